package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/domain/services"
	"ripclips/contexts/community-clips/feed-engine/ports"

	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultFeedPageSize = 5
	maxFeedPageSize     = 50
)

type GetFeedQuery struct {
	GameFilter  string
	SortMode    string
	PageIndex   int
	PageSize    int
	UserID      string
	EmbedParent string
}

// GetFeedUseCase is the read side of the feed engine:
// load approved clips, filter by game, rank, slice one page, resolve like flags.
type GetFeedUseCase struct {
	Clips           ports.ClipStore
	Likes           ports.LikeStore
	Clock           ports.Clock
	DefaultPageSize int
	MaxPageSize     int
	Logger          *slog.Logger
}

func (uc GetFeedUseCase) Execute(ctx context.Context, query GetFeedQuery) (view entities.FeedView, err error) {
	logger := application.ResolveLogger(uc.Logger)

	gameFilter, err := services.ParseGameFilter(query.GameFilter)
	if err != nil {
		logger.Warn("feed query rejected",
			"event", "feed_get_feed_invalid_game_filter",
			"module", "community-clips/feed-engine",
			"layer", "application",
		)
		return entities.FeedView{}, err
	}
	mode, err := services.ParseSortMode(query.SortMode)
	if err != nil {
		logger.Warn("feed query rejected",
			"event", "feed_get_feed_invalid_sort_mode",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"sort_mode", strings.TrimSpace(query.SortMode),
		)
		return entities.FeedView{}, err
	}
	if query.PageIndex < 0 {
		return entities.FeedView{}, domainerrors.ErrInvalidFeedQuery
	}
	pageSize := uc.resolvePageSize(query.PageSize)
	userID := strings.TrimSpace(query.UserID)

	ctx, span := application.StartSpan(ctx, "feed.get_feed",
		attribute.String("feed.game_filter", gameFilter),
		attribute.String("feed.sort_mode", string(mode)),
		attribute.Int("feed.page_index", query.PageIndex),
		attribute.Int("feed.page_size", pageSize),
	)
	defer func() { application.EndSpan(span, err) }()

	clips, err := uc.Load(ctx)
	if err != nil {
		logger.Error("feed load failed",
			"event", "feed_get_feed_load_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.FeedView{}, err
	}

	filtered := services.FilterByGame(clips, gameFilter)
	ranked := services.RankClips(filtered, mode, uc.now())
	page := services.Paginate(ranked, pageSize, query.PageIndex)

	liked, err := uc.likedFlags(ctx, userID, page.Items)
	if err != nil {
		logger.Error("feed like flags failed",
			"event", "feed_get_feed_like_flags_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return entities.FeedView{}, err
	}

	items := make([]entities.FeedItem, 0, len(page.Items))
	for _, rankedClip := range page.Items {
		items = append(items, entities.FeedItem{
			Clip:         rankedClip.Clip,
			HotScore:     rankedClip.HotScore,
			EmbedURL:     services.EmbedURL(rankedClip.Clip.ClipURL, query.EmbedParent),
			UserHasLiked: liked[rankedClip.Clip.ClipID],
		})
	}

	logger.Debug("feed page served",
		"event", "feed_get_feed_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"game_filter", gameFilter,
		"sort_mode", string(mode),
		"page_index", query.PageIndex,
		"items_count", len(items),
		"has_more", page.HasMore,
	)

	return entities.FeedView{
		Items:      items,
		GameFilter: gameFilter,
		SortMode:   mode,
		PageIndex:  query.PageIndex,
		PageSize:   pageSize,
		TotalCount: len(filtered),
		HasMore:    page.HasMore,
	}, nil
}

// Load re-reads the authoritative approved set on every call.
func (uc GetFeedUseCase) Load(ctx context.Context) ([]entities.Clip, error) {
	clips, err := uc.Clips.ListClips(ctx, entities.ClipStatusApproved)
	if err != nil {
		return nil, err
	}
	approved := make([]entities.Clip, 0, len(clips))
	for _, clip := range clips {
		if clip.IsVisibleInFeed() {
			approved = append(approved, clip)
		}
	}
	return approved, nil
}

func (uc GetFeedUseCase) likedFlags(ctx context.Context, userID string, page []services.RankedClip) (map[string]bool, error) {
	if userID == "" || len(page) == 0 || uc.Likes == nil {
		return map[string]bool{}, nil
	}
	clipIDs := make([]string, 0, len(page))
	for _, item := range page {
		clipIDs = append(clipIDs, item.Clip.ClipID)
	}
	return uc.Likes.LikedClipIDs(ctx, userID, clipIDs)
}

func (uc GetFeedUseCase) resolvePageSize(requested int) int {
	fallback := uc.DefaultPageSize
	if fallback <= 0 {
		fallback = defaultFeedPageSize
	}
	limit := uc.MaxPageSize
	if limit <= 0 {
		limit = maxFeedPageSize
	}
	size := requested
	if size <= 0 {
		size = fallback
	}
	if size > limit {
		size = limit
	}
	return size
}

func (uc GetFeedUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
