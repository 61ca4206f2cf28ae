package services

import (
	"net/url"
	"regexp"
	"strings"

	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
)

type ClipPlatform string

const (
	PlatformTwitch  ClipPlatform = "twitch"
	PlatformYouTube ClipPlatform = "youtube"
)

var (
	twitchClipURLPattern  = regexp.MustCompile(`^https://(?:clips\.twitch\.tv|www\.twitch\.tv/\w+/clip)/[\w-]+`)
	youtubeURLPattern     = regexp.MustCompile(`^https://(?:www\.youtube\.com/watch\?v=|youtu\.be/)[\w-]+`)
	twitchClipIDPattern   = regexp.MustCompile(`(?:clips\.twitch\.tv/|twitch\.tv/\w+/clip/)([A-Za-z0-9_-]+)`)
	youtubeVideoIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})`)
)

func DetectPlatform(clipURL string) (ClipPlatform, error) {
	value := strings.TrimSpace(clipURL)
	switch {
	case twitchClipURLPattern.MatchString(value):
		return PlatformTwitch, nil
	case youtubeURLPattern.MatchString(value):
		return PlatformYouTube, nil
	default:
		return "", domainerrors.ErrInvalidClipURL
	}
}

// EmbedURL builds the player URL for a stored clip URL. Twitch requires the
// embedding host as the parent parameter. Unrecognised URLs yield "".
func EmbedURL(clipURL string, parentHost string) string {
	value := strings.TrimSpace(clipURL)
	if match := twitchClipIDPattern.FindStringSubmatch(value); len(match) == 2 {
		parent := strings.TrimSpace(parentHost)
		if parent == "" {
			parent = "localhost"
		}
		return "https://clips.twitch.tv/embed?clip=" + url.QueryEscape(match[1]) +
			"&parent=" + url.QueryEscape(parent)
	}
	if match := youtubeVideoIDPattern.FindStringSubmatch(value); len(match) == 2 {
		return "https://www.youtube.com/embed/" + match[1]
	}
	return ""
}
