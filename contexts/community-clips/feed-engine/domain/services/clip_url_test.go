package services

import (
	"errors"
	"testing"

	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want ClipPlatform
	}{
		{url: "https://clips.twitch.tv/BraveSmallEagleKappa-abc123", want: PlatformTwitch},
		{url: "https://www.twitch.tv/someone/clip/FunnyClipSlug-x_Y", want: PlatformTwitch},
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: PlatformYouTube},
		{url: "https://youtu.be/dQw4w9WgXcQ", want: PlatformYouTube},
	}
	for _, tc := range tests {
		got, err := DetectPlatform(tc.url)
		if err != nil {
			t.Fatalf("detect %s: %v", tc.url, err)
		}
		if got != tc.want {
			t.Fatalf("detect %s: expected %s, got %s", tc.url, tc.want, got)
		}
	}

	for _, bad := range []string{"", "http://clips.twitch.tv/abc", "https://vimeo.com/123", "https://www.twitch.tv/someone"} {
		if _, err := DetectPlatform(bad); !errors.Is(err, domainerrors.ErrInvalidClipURL) {
			t.Fatalf("expected invalid url for %q, got %v", bad, err)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	got := EmbedURL("https://clips.twitch.tv/BraveSmallEagle", "ripclips.gg")
	if got != "https://clips.twitch.tv/embed?clip=BraveSmallEagle&parent=ripclips.gg" {
		t.Fatalf("unexpected twitch embed: %s", got)
	}
	got = EmbedURL("https://www.twitch.tv/someone/clip/Slug-1", "")
	if got != "https://clips.twitch.tv/embed?clip=Slug-1&parent=localhost" {
		t.Fatalf("unexpected twitch embed without parent: %s", got)
	}
	got = EmbedURL("https://youtu.be/dQw4w9WgXcQ", "ripclips.gg")
	if got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected youtube embed: %s", got)
	}
	if got := EmbedURL("https://example.com/video", "ripclips.gg"); got != "" {
		t.Fatalf("expected empty embed for unknown url, got %s", got)
	}
}

func TestNormalizeGameName(t *testing.T) {
	if got := NormalizeGameName("  diablo   IV "); got != "Diablo 4" {
		t.Fatalf("expected Diablo 4, got %q", got)
	}
	if got := NormalizeGameName("Grim  Dawn"); got != "Grim Dawn" {
		t.Fatalf("expected unknown games to keep their spelling, got %q", got)
	}
}
