package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
)

const (
	likeWeight    = 3.0
	commentWeight = 2.0
	viewWeight    = 0.1

	decayHours    = 24.0
	minTimeFactor = 0.1
)

// RankedClip pairs a clip with the hot score computed for the ranking instant.
type RankedClip struct {
	Clip     entities.Clip
	HotScore float64
}

// Page is a deterministic slice of an already ordered sequence.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

func Engagement(clip entities.Clip) float64 {
	return float64(clip.Likes)*likeWeight +
		float64(clip.Comments)*commentWeight +
		float64(clip.Views)*viewWeight
}

// TimeFactor decays with age and never drops below 0.1. Clips from the future
// count as brand new and a zero submittedAt counts as the Unix epoch.
func TimeFactor(submittedAt time.Time, now time.Time) float64 {
	if submittedAt.IsZero() {
		submittedAt = time.Unix(0, 0).UTC()
	}
	hours := now.Sub(submittedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Max(minTimeFactor, 1/(1+hours/decayHours))
}

func HotScore(clip entities.Clip, now time.Time) float64 {
	return Engagement(clip) * TimeFactor(clip.SubmittedAt, now)
}

// FilterByGame keeps clips whose game equals the filter ignoring case.
// The "all" sentinel returns the input untouched.
func FilterByGame(clips []entities.Clip, gameFilter string) []entities.Clip {
	filter := strings.TrimSpace(gameFilter)
	if filter == "" || strings.EqualFold(filter, entities.GameFilterAll) {
		return clips
	}
	filtered := make([]entities.Clip, 0, len(clips))
	for _, clip := range clips {
		if strings.EqualFold(clip.Game, filter) {
			filtered = append(filtered, clip)
		}
	}
	return filtered
}

// RankClips orders a copy of clips for the given mode. Ties on the primary key
// fall back to submittedAt descending and then to input order.
func RankClips(clips []entities.Clip, mode entities.SortMode, now time.Time) []RankedClip {
	ranked := make([]RankedClip, 0, len(clips))
	for _, clip := range clips {
		ranked = append(ranked, RankedClip{
			Clip:     clip,
			HotScore: HotScore(clip, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(ranked[i], ranked[j], mode)
	})
	return ranked
}

func SortClips(clips []entities.Clip, mode entities.SortMode, now time.Time) []entities.Clip {
	ranked := RankClips(clips, mode, now)
	sorted := make([]entities.Clip, 0, len(ranked))
	for _, item := range ranked {
		sorted = append(sorted, item.Clip)
	}
	return sorted
}

func rankedBefore(a RankedClip, b RankedClip, mode entities.SortMode) bool {
	switch mode {
	case entities.SortMostLiked:
		if a.Clip.Likes != b.Clip.Likes {
			return a.Clip.Likes > b.Clip.Likes
		}
	case entities.SortMostViewed:
		if a.Clip.Views != b.Clip.Views {
			return a.Clip.Views > b.Clip.Views
		}
	case entities.SortHot:
		if a.HotScore != b.HotScore {
			return a.HotScore > b.HotScore
		}
	}
	return a.Clip.SubmittedAt.After(b.Clip.SubmittedAt)
}

// Paginate returns items[pageIndex*pageSize:(pageIndex+1)*pageSize] clamped to
// the sequence length. Non-positive sizes and negative indexes yield an empty page.
func Paginate[T any](items []T, pageSize int, pageIndex int) Page[T] {
	if pageSize <= 0 || pageIndex < 0 || pageIndex > len(items)/pageSize {
		return Page[T]{Items: []T{}}
	}
	start := pageIndex * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return Page[T]{
		Items:   page,
		HasMore: (pageIndex+1)*pageSize < len(items),
	}
}
