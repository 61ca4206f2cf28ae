package feedengine

import (
	"log/slog"
	"time"

	httpadapter "ripclips/contexts/community-clips/feed-engine/adapters/http"
	"ripclips/contexts/community-clips/feed-engine/adapters/memory"
	"ripclips/contexts/community-clips/feed-engine/application/commands"
	"ripclips/contexts/community-clips/feed-engine/application/queries"
	"ripclips/contexts/community-clips/feed-engine/application/workers"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Reconciler workers.LikeCounterReconciler
	Store      *memory.Store
}

type Dependencies struct {
	Clips           ports.ClipStore
	Likes           ports.LikeStore
	Comments        ports.CommentStore
	Guard           ports.ClickGuard
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	DefaultPageSize int
	MaxPageSize     int
	LikeGuardTTL    time.Duration
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Feed: queries.GetFeedUseCase{
				Clips:           deps.Clips,
				Likes:           deps.Likes,
				Clock:           deps.Clock,
				DefaultPageSize: deps.DefaultPageSize,
				MaxPageSize:     deps.MaxPageSize,
				Logger:          deps.Logger,
			},
			Clip: queries.GetClipUseCase{
				Clips:  deps.Clips,
				Likes:  deps.Likes,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			Queue: queries.ListClipsByStatusUseCase{
				Clips:  deps.Clips,
				Logger: deps.Logger,
			},
			Comments: queries.ListCommentsUseCase{
				Clips:    deps.Clips,
				Comments: deps.Comments,
			},
			Submit: commands.SubmitClipUseCase{
				Clips:  deps.Clips,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Likes: commands.LikeClipUseCase{
				Clips:    deps.Clips,
				Likes:    deps.Likes,
				Guard:    deps.Guard,
				Clock:    deps.Clock,
				GuardTTL: deps.LikeGuardTTL,
				Logger:   deps.Logger,
			},
			Views: commands.RecordViewUseCase{
				Clips:  deps.Clips,
				Logger: deps.Logger,
			},
			Moderation: commands.ModerateClipUseCase{
				Clips:  deps.Clips,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			AddComment: commands.AddCommentUseCase{
				Clips:    deps.Clips,
				Comments: deps.Comments,
				Clock:    deps.Clock,
				IDGen:    deps.IDGen,
				Logger:   deps.Logger,
			},
			Logger: deps.Logger,
		},
		Reconciler: workers.LikeCounterReconciler{
			Likes:  deps.Likes,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Clip, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Clips:    store,
		Likes:    store,
		Comments: store,
		Guard:    memory.NewClickGuard(),
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
