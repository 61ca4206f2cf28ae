package postgresadapter

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the clip, like and comment tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&clipModel{}, &likeModel{}, &commentModel{}); err != nil {
		return r.logError("feed_repo_migrate_failed", err)
	}
	return nil
}

func (r *Repository) ListClips(ctx context.Context, status entities.ClipStatus) ([]entities.Clip, error) {
	tx := r.db.WithContext(ctx).Model(&clipModel{})
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}
	var rows []clipModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "submitted_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "clip_id"}, Desc: false}).
		Find(&rows).Error; err != nil {
		return nil, r.logError("feed_repo_list_clips_failed", err, "status", string(status))
	}
	items := make([]entities.Clip, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetClip(ctx context.Context, clipID string) (entities.Clip, error) {
	var row clipModel
	err := r.db.WithContext(ctx).
		Where("clip_id = ?", strings.TrimSpace(clipID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Clip{}, domainerrors.ErrClipNotFound
		}
		return entities.Clip{}, r.logError("feed_repo_get_clip_failed", err, "clip_id", strings.TrimSpace(clipID))
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateClip(ctx context.Context, clip entities.Clip) error {
	row := clipModelFromEntity(clip)
	row.Status = string(entities.ClipStatusPending)
	row.Likes, row.Views, row.Comments = 0, 0, 0
	row.ReviewedBy, row.ReviewedAt, row.RejectionReason = "", nil, ""
	if row.SubmittedAt == nil {
		now := time.Now().UTC()
		row.SubmittedAt = &now
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidClipInput
		}
		return r.logError("feed_repo_create_clip_failed", err, "clip_id", row.ClipID)
	}
	return nil
}

// SetStatus is a conditional update guarded by status = 'pending', so two
// moderators racing on the same clip cannot both win.
func (r *Repository) SetStatus(ctx context.Context, change ports.StatusChange) (entities.Clip, error) {
	clipID := strings.TrimSpace(change.ClipID)
	reviewedAt := change.ReviewedAt.UTC()
	result := r.db.WithContext(ctx).Model(&clipModel{}).
		Where("clip_id = ? AND status = ?", clipID, string(entities.ClipStatusPending)).
		Updates(map[string]any{
			"status":           string(change.Status),
			"reviewed_by":      strings.TrimSpace(change.ReviewedBy),
			"reviewed_at":      reviewedAt,
			"rejection_reason": strings.TrimSpace(change.RejectionReason),
		})
	if result.Error != nil {
		return entities.Clip{}, r.logError("feed_repo_set_status_failed", result.Error,
			"clip_id", clipID,
			"status", string(change.Status),
		)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetClip(ctx, clipID); err != nil {
			return entities.Clip{}, err
		}
		return entities.Clip{}, domainerrors.ErrInvalidStatusTransition
	}
	return r.GetClip(ctx, clipID)
}

func (r *Repository) DeleteClip(ctx context.Context, clipID string) error {
	clipID = strings.TrimSpace(clipID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clip_id = ?", clipID).Delete(&likeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("clip_id = ?", clipID).Delete(&commentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("clip_id = ?", clipID).Delete(&clipModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrClipNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrClipNotFound) {
			return err
		}
		return r.logError("feed_repo_delete_clip_failed", err, "clip_id", clipID)
	}
	return nil
}

func (r *Repository) IncrementViewCount(ctx context.Context, clipID string) error {
	clipID = strings.TrimSpace(clipID)
	result := r.db.WithContext(ctx).Model(&clipModel{}).
		Where("clip_id = ?", clipID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return r.logError("feed_repo_increment_views_failed", result.Error, "clip_id", clipID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrClipNotFound
	}
	return nil
}

// CreateLike inserts the like record and bumps the counter in one transaction.
// The (clip_id, user_id) unique index turns a repeated like into a no-op.
func (r *Repository) CreateLike(ctx context.Context, like entities.Like) (bool, error) {
	row := likeModel{
		ClipID:    strings.TrimSpace(like.ClipID),
		UserID:    strings.TrimSpace(like.UserID),
		CreatedAt: like.CreatedAt.UTC(),
	}
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clip_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			return nil
		}
		update := tx.Model(&clipModel{}).
			Where("clip_id = ?", row.ClipID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrClipNotFound
		}
		created = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrClipNotFound) {
			return false, err
		}
		return false, r.logError("feed_repo_create_like_failed", err,
			"clip_id", row.ClipID,
			"user_id", row.UserID,
		)
	}
	return created, nil
}

// DeleteLike locks the clip row before touching the like record so it
// serializes with ReconcileLikeCounts on the same clip.
func (r *Repository) DeleteLike(ctx context.Context, clipID string, userID string) (bool, error) {
	clipID = strings.TrimSpace(clipID)
	userID = strings.TrimSpace(userID)
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockClip(tx, clipID); err != nil {
			return err
		}
		removal := tx.Where("clip_id = ? AND user_id = ?", clipID, userID).Delete(&likeModel{})
		if removal.Error != nil {
			return removal.Error
		}
		if removal.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&clipModel{}).
			Where("clip_id = ?", clipID).
			UpdateColumn("likes", gorm.Expr("GREATEST(likes - ?, 0)", 1)).
			Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrClipNotFound) {
			return false, err
		}
		return false, r.logError("feed_repo_delete_like_failed", err,
			"clip_id", clipID,
			"user_id", userID,
		)
	}
	return deleted, nil
}

func (r *Repository) HasLike(ctx context.Context, clipID string, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&likeModel{}).
		Where("clip_id = ? AND user_id = ?", strings.TrimSpace(clipID), strings.TrimSpace(userID)).
		Count(&count).Error; err != nil {
		return false, r.logError("feed_repo_has_like_failed", err,
			"clip_id", strings.TrimSpace(clipID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

func (r *Repository) LikedClipIDs(ctx context.Context, userID string, clipIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(clipIDs))
	if len(clipIDs) == 0 {
		return liked, nil
	}
	var ids []string
	if err := r.db.WithContext(ctx).Model(&likeModel{}).
		Where("user_id = ? AND clip_id IN ?", strings.TrimSpace(userID), clipIDs).
		Pluck("clip_id", &ids).Error; err != nil {
		return nil, r.logError("feed_repo_liked_clip_ids_failed", err, "user_id", strings.TrimSpace(userID))
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// ReconcileLikeCounts finds clips whose counter disagrees with the like
// records and repairs each one under its row lock. The candidate scan may be
// stale; every repair recounts after the lock is held.
func (r *Repository) ReconcileLikeCounts(ctx context.Context) (int, error) {
	var candidates []string
	if err := r.db.WithContext(ctx).
		Table("clips AS c").
		Joins("LEFT JOIN clip_likes AS l ON l.clip_id = c.clip_id").
		Group("c.clip_id, c.likes").
		Having("c.likes <> COUNT(l.id)").
		Order("c.clip_id").
		Pluck("c.clip_id", &candidates).Error; err != nil {
		return 0, r.logError("feed_repo_reconcile_likes_failed", err)
	}

	repaired := 0
	for _, clipID := range candidates {
		fixed, err := r.reconcileClipLikes(ctx, clipID)
		if errors.Is(err, domainerrors.ErrClipNotFound) {
			continue
		}
		if err != nil {
			return repaired, r.logError("feed_repo_reconcile_likes_failed", err, "clip_id", clipID)
		}
		if fixed {
			repaired++
		}
	}
	return repaired, nil
}

func (r *Repository) reconcileClipLikes(ctx context.Context, clipID string) (bool, error) {
	fixed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clip, err := lockClip(tx, clipID)
		if err != nil {
			return err
		}
		// Counted after the lock so likes committed while waiting are included.
		var total int64
		if err := tx.Model(&likeModel{}).Where("clip_id = ?", clipID).Count(&total).Error; err != nil {
			return err
		}
		if clip.Likes == total {
			return nil
		}
		if err := tx.Model(&clipModel{}).
			Where("clip_id = ?", clipID).
			UpdateColumn("likes", total).Error; err != nil {
			return err
		}
		fixed = true
		return nil
	})
	return fixed, err
}

func lockClip(tx *gorm.DB, clipID string) (clipModel, error) {
	var row clipModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("clip_id", "likes").
		Where("clip_id = ?", clipID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clipModel{}, domainerrors.ErrClipNotFound
	}
	return row, err
}

func (r *Repository) AddComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&clipModel{}).
			Where("clip_id = ?", row.ClipID).
			UpdateColumn("comments", gorm.Expr("comments + ?", 1))
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrClipNotFound
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrClipNotFound) {
			return err
		}
		return r.logError("feed_repo_add_comment_failed", err,
			"clip_id", row.ClipID,
			"comment_id", row.CommentID,
		)
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, clipID string) ([]entities.Comment, error) {
	var rows []commentModel
	if err := r.db.WithContext(ctx).
		Where("clip_id = ?", strings.TrimSpace(clipID)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Find(&rows).Error; err != nil {
		return nil, r.logError("feed_repo_list_comments_failed", err, "clip_id", strings.TrimSpace(clipID))
	}
	items := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// logError records the failure and tags availability problems with
// ErrStoreUnavailable so callers can tell them apart from logic errors.
func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-clips/feed-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	transient := isTransient(err)
	fields = append(fields, "transient", transient)
	r.logger.Error("feed repository operation failed", fields...)
	if transient {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == "40001",
			pgErr.Code == "40P01",
			pgErr.Code == "57P01",
			pgErr.Code == "53300":
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

type clipModel struct {
	ClipID                  string     `gorm:"column:clip_id;primaryKey"`
	ClipURL                 string     `gorm:"column:clip_url;not null"`
	Title                   string     `gorm:"column:title;not null"`
	Game                    string     `gorm:"column:game;index:idx_clips_game"`
	Description             string     `gorm:"column:description"`
	Streamer                string     `gorm:"column:streamer"`
	SubmittedBy             string     `gorm:"column:submitted_by"`
	Status                  string     `gorm:"column:status;not null;index:idx_clips_status_submitted,priority:1"`
	SubmittedAt             *time.Time `gorm:"column:submitted_at;index:idx_clips_status_submitted,priority:2"`
	ReviewedBy              string     `gorm:"column:reviewed_by"`
	ReviewedAt              *time.Time `gorm:"column:reviewed_at"`
	RejectionReason         string     `gorm:"column:rejection_reason"`
	Likes                   int64      `gorm:"column:likes;not null;default:0;check:likes >= 0"`
	Views                   int64      `gorm:"column:views;not null;default:0;check:views >= 0"`
	Comments                int64      `gorm:"column:comments;not null;default:0;check:comments >= 0"`
	StreamerProfileImageURL string     `gorm:"column:streamer_profile_image_url"`
	GameBoxArtURL           string     `gorm:"column:game_box_art_url"`
}

func (clipModel) TableName() string {
	return "clips"
}

func clipModelFromEntity(clip entities.Clip) clipModel {
	var submittedAt *time.Time
	if !clip.SubmittedAt.IsZero() {
		value := clip.SubmittedAt.UTC()
		submittedAt = &value
	}
	return clipModel{
		ClipID:                  strings.TrimSpace(clip.ClipID),
		ClipURL:                 clip.ClipURL,
		Title:                   clip.Title,
		Game:                    clip.Game,
		Description:             clip.Description,
		Streamer:                clip.Streamer,
		SubmittedBy:             clip.SubmittedBy,
		Status:                  string(clip.Status),
		SubmittedAt:             submittedAt,
		ReviewedBy:              clip.ReviewedBy,
		ReviewedAt:              clip.ReviewedAt,
		RejectionReason:         clip.RejectionReason,
		Likes:                   clip.Likes,
		Views:                   clip.Views,
		Comments:                clip.Comments,
		StreamerProfileImageURL: clip.StreamerProfileImageURL,
		GameBoxArtURL:           clip.GameBoxArtURL,
	}
}

// toEntity resolves the nullable submitted_at column through entities.Timestamp
// so rows imported without a timestamp rank as the oldest clips.
func (m clipModel) toEntity() entities.Clip {
	var reviewedAt *time.Time
	if m.ReviewedAt != nil {
		value := m.ReviewedAt.UTC()
		reviewedAt = &value
	}
	return entities.Clip{
		ClipID:                  m.ClipID,
		ClipURL:                 m.ClipURL,
		Title:                   m.Title,
		Game:                    m.Game,
		Description:             m.Description,
		Streamer:                m.Streamer,
		SubmittedBy:             m.SubmittedBy,
		Status:                  entities.ClipStatus(m.Status),
		SubmittedAt:             entities.TimestampFromPtr(m.SubmittedAt).Resolve(),
		ReviewedBy:              m.ReviewedBy,
		ReviewedAt:              reviewedAt,
		RejectionReason:         m.RejectionReason,
		Likes:                   m.Likes,
		Views:                   m.Views,
		Comments:                m.Comments,
		StreamerProfileImageURL: m.StreamerProfileImageURL,
		GameBoxArtURL:           m.GameBoxArtURL,
	}
}

type likeModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ClipID    string    `gorm:"column:clip_id;not null;uniqueIndex:idx_clip_likes_clip_user"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_clip_likes_clip_user;index:idx_clip_likes_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (likeModel) TableName() string {
	return "clip_likes"
}

type commentModel struct {
	CommentID       string    `gorm:"column:comment_id;primaryKey"`
	ClipID          string    `gorm:"column:clip_id;not null;index:idx_clip_comments_clip"`
	UserID          string    `gorm:"column:user_id;not null"`
	UserDisplayName string    `gorm:"column:user_display_name"`
	Content         string    `gorm:"column:content;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (commentModel) TableName() string {
	return "clip_comments"
}

func commentModelFromEntity(comment entities.Comment) commentModel {
	return commentModel{
		CommentID:       strings.TrimSpace(comment.CommentID),
		ClipID:          strings.TrimSpace(comment.ClipID),
		UserID:          strings.TrimSpace(comment.UserID),
		UserDisplayName: comment.UserDisplayName,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		CommentID:       m.CommentID,
		ClipID:          m.ClipID,
		UserID:          m.UserID,
		UserDisplayName: m.UserDisplayName,
		Content:         m.Content,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}
