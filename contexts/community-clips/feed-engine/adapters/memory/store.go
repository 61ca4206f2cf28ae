package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"

	"github.com/google/uuid"
)

type likeKey struct {
	clipID string
	userID string
}

// Store keeps clips, likes and comments in process. Every mutation runs under
// one write lock, which makes record and counter changes a single atomic unit.
type Store struct {
	mu sync.RWMutex

	order    []string
	clips    map[string]entities.Clip
	likes    map[likeKey]entities.Like
	comments map[string][]entities.Comment
}

func NewStore(seed []entities.Clip) *Store {
	store := &Store{
		order:    make([]string, 0, len(seed)),
		clips:    make(map[string]entities.Clip, len(seed)),
		likes:    make(map[likeKey]entities.Like),
		comments: make(map[string][]entities.Comment),
	}
	for _, clip := range seed {
		store.putClip(normalizeClip(clip))
	}
	return store
}

// SetClip inserts or replaces a clip verbatim, counters included.
func (s *Store) SetClip(clip entities.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putClip(normalizeClip(clip))
}

func (s *Store) ListClips(_ context.Context, status entities.ClipStatus) ([]entities.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Clip, 0, len(s.order))
	for _, clipID := range s.order {
		clip := s.clips[clipID]
		if status != "" && clip.Status != status {
			continue
		}
		items = append(items, clip)
	}
	return items, nil
}

func (s *Store) GetClip(_ context.Context, clipID string) (entities.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clip, ok := s.clips[strings.TrimSpace(clipID)]
	if !ok {
		return entities.Clip{}, domainerrors.ErrClipNotFound
	}
	return clip, nil
}

func (s *Store) CreateClip(_ context.Context, clip entities.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clipID := strings.TrimSpace(clip.ClipID)
	if clipID == "" {
		return domainerrors.ErrInvalidClipInput
	}
	if _, exists := s.clips[clipID]; exists {
		return domainerrors.ErrInvalidClipInput
	}
	clip.ClipID = clipID
	clip.Status = entities.ClipStatusPending
	clip.Likes = 0
	clip.Views = 0
	clip.Comments = 0
	clip.ReviewedBy = ""
	clip.ReviewedAt = nil
	clip.RejectionReason = ""
	if clip.SubmittedAt.IsZero() {
		clip.SubmittedAt = s.Now()
	}
	s.putClip(clip)
	return nil
}

func (s *Store) SetStatus(_ context.Context, change ports.StatusChange) (entities.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clipID := strings.TrimSpace(change.ClipID)
	clip, ok := s.clips[clipID]
	if !ok {
		return entities.Clip{}, domainerrors.ErrClipNotFound
	}
	if !clip.CanTransitionTo(change.Status) {
		return entities.Clip{}, domainerrors.ErrInvalidStatusTransition
	}
	reviewedAt := change.ReviewedAt.UTC()
	clip.Status = change.Status
	clip.ReviewedBy = strings.TrimSpace(change.ReviewedBy)
	clip.ReviewedAt = &reviewedAt
	clip.RejectionReason = strings.TrimSpace(change.RejectionReason)
	s.clips[clipID] = clip
	return clip, nil
}

func (s *Store) DeleteClip(_ context.Context, clipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clipID = strings.TrimSpace(clipID)
	if _, ok := s.clips[clipID]; !ok {
		return domainerrors.ErrClipNotFound
	}
	delete(s.clips, clipID)
	delete(s.comments, clipID)
	for key := range s.likes {
		if key.clipID == clipID {
			delete(s.likes, key)
		}
	}
	for i, id := range s.order {
		if id == clipID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) IncrementViewCount(_ context.Context, clipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clipID = strings.TrimSpace(clipID)
	clip, ok := s.clips[clipID]
	if !ok {
		return domainerrors.ErrClipNotFound
	}
	clip.Views++
	s.clips[clipID] = clip
	return nil
}

func (s *Store) CreateLike(_ context.Context, like entities.Like) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{clipID: strings.TrimSpace(like.ClipID), userID: strings.TrimSpace(like.UserID)}
	clip, ok := s.clips[key.clipID]
	if !ok {
		return false, domainerrors.ErrClipNotFound
	}
	if _, exists := s.likes[key]; exists {
		return false, nil
	}
	like.ClipID = key.clipID
	like.UserID = key.userID
	if like.CreatedAt.IsZero() {
		like.CreatedAt = s.Now()
	}
	s.likes[key] = like
	clip.Likes++
	s.clips[key.clipID] = clip
	return true, nil
}

func (s *Store) DeleteLike(_ context.Context, clipID string, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{clipID: strings.TrimSpace(clipID), userID: strings.TrimSpace(userID)}
	clip, ok := s.clips[key.clipID]
	if !ok {
		return false, domainerrors.ErrClipNotFound
	}
	if _, exists := s.likes[key]; !exists {
		return false, nil
	}
	delete(s.likes, key)
	if clip.Likes > 0 {
		clip.Likes--
	}
	s.clips[key.clipID] = clip
	return true, nil
}

func (s *Store) HasLike(_ context.Context, clipID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.likes[likeKey{clipID: strings.TrimSpace(clipID), userID: strings.TrimSpace(userID)}]
	return exists, nil
}

func (s *Store) LikedClipIDs(_ context.Context, userID string, clipIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID = strings.TrimSpace(userID)
	liked := make(map[string]bool, len(clipIDs))
	for _, clipID := range clipIDs {
		if _, exists := s.likes[likeKey{clipID: clipID, userID: userID}]; exists {
			liked[clipID] = true
		}
	}
	return liked, nil
}

func (s *Store) ReconcileLikeCounts(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64, len(s.clips))
	for key := range s.likes {
		counts[key.clipID]++
	}
	repaired := 0
	for clipID, clip := range s.clips {
		if clip.Likes == counts[clipID] {
			continue
		}
		clip.Likes = counts[clipID]
		s.clips[clipID] = clip
		repaired++
	}
	return repaired, nil
}

func (s *Store) AddComment(_ context.Context, comment entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clipID := strings.TrimSpace(comment.ClipID)
	clip, ok := s.clips[clipID]
	if !ok {
		return domainerrors.ErrClipNotFound
	}
	s.comments[clipID] = append(s.comments[clipID], comment)
	clip.Comments++
	s.clips[clipID] = clip
	return nil
}

func (s *Store) ListComments(_ context.Context, clipID string) ([]entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.comments[strings.TrimSpace(clipID)]
	items := make([]entities.Comment, len(stored))
	copy(items, stored)
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) putClip(clip entities.Clip) {
	if _, exists := s.clips[clip.ClipID]; !exists {
		s.order = append(s.order, clip.ClipID)
	}
	s.clips[clip.ClipID] = clip
}

// normalizeClip resolves seeded timestamps the same way persisted rows are resolved.
func normalizeClip(clip entities.Clip) entities.Clip {
	clip.ClipID = strings.TrimSpace(clip.ClipID)
	clip.SubmittedAt = entities.ClientDate(clip.SubmittedAt).Resolve()
	if clip.Status == "" {
		clip.Status = entities.ClipStatusPending
	}
	return clip
}
