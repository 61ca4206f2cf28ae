package services

import (
	"strings"
	"unicode"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
)

const maxGameFilterLength = 100

// ParseSortMode defaults a blank mode to newest and rejects anything unknown.
func ParseSortMode(raw string) (entities.SortMode, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return entities.SortNewest, nil
	}
	mode := entities.SortMode(value)
	if !mode.IsValid() {
		return "", domainerrors.ErrInvalidFeedQuery
	}
	return mode, nil
}

func ParseGameFilter(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, entities.GameFilterAll) {
		return entities.GameFilterAll, nil
	}
	if len(value) > maxGameFilterLength {
		return "", domainerrors.ErrInvalidFeedQuery
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return "", domainerrors.ErrInvalidFeedQuery
		}
	}
	return value, nil
}
