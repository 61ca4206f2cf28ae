package entities

type SortMode string

const (
	SortNewest     SortMode = "newest"
	SortMostLiked  SortMode = "most-liked"
	SortMostViewed SortMode = "most-viewed"
	SortHot        SortMode = "hot"
)

// GameFilterAll disables game filtering.
const GameFilterAll = "all"

func (m SortMode) IsValid() bool {
	switch m {
	case SortNewest, SortMostLiked, SortMostViewed, SortHot:
		return true
	default:
		return false
	}
}

type FeedItem struct {
	Clip         Clip
	HotScore     float64
	EmbedURL     string
	UserHasLiked bool
}

// FeedView is one page of the ranked feed. It is derived on every request and never stored.
type FeedView struct {
	Items      []FeedItem
	GameFilter string
	SortMode   SortMode
	PageIndex  int
	PageSize   int
	TotalCount int
	HasMore    bool
}
