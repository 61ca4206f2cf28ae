package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type FeedRequest struct {
	Game        string
	Sort        string
	Page        int
	PageSize    int
	EmbedParent string
}

type ClipResponse struct {
	ClipID                  string  `json:"clip_id"`
	ClipURL                 string  `json:"clip_url"`
	EmbedURL                string  `json:"embed_url,omitempty"`
	Title                   string  `json:"title"`
	Game                    string  `json:"game"`
	Description             string  `json:"description,omitempty"`
	Streamer                string  `json:"streamer"`
	SubmittedBy             string  `json:"submitted_by"`
	Status                  string  `json:"status"`
	SubmittedAt             string  `json:"submitted_at"`
	ReviewedBy              string  `json:"reviewed_by,omitempty"`
	ReviewedAt              string  `json:"reviewed_at,omitempty"`
	RejectionReason         string  `json:"rejection_reason,omitempty"`
	Likes                   int64   `json:"likes"`
	Views                   int64   `json:"views"`
	Comments                int64   `json:"comments"`
	HotScore                float64 `json:"hot_score"`
	UserHasLiked            bool    `json:"user_has_liked"`
	StreamerProfileImageURL string  `json:"streamer_profile_image_url,omitempty"`
	GameBoxArtURL           string  `json:"game_box_art_url,omitempty"`
}

type FeedResponse struct {
	Items      []ClipResponse `json:"items"`
	Game       string         `json:"game"`
	Sort       string         `json:"sort"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int            `json:"total_count"`
	HasMore    bool           `json:"has_more"`
}

type SubmitClipRequest struct {
	ClipURL                 string `json:"clip_url"`
	Title                   string `json:"title"`
	Game                    string `json:"game"`
	Description             string `json:"description"`
	Streamer                string `json:"streamer"`
	SubmittedBy             string `json:"submitted_by"`
	StreamerProfileImageURL string `json:"streamer_profile_image_url"`
	GameBoxArtURL           string `json:"game_box_art_url"`
}

type LikeResponse struct {
	ClipID  string `json:"clip_id"`
	Liked   bool   `json:"liked"`
	Changed bool   `json:"changed"`
	Likes   int64  `json:"likes"`
}

type ReviewClipRequest struct {
	Reason string `json:"reason"`
}

type ClipListResponse struct {
	Items []ClipResponse `json:"items"`
}

type AddCommentRequest struct {
	Content         string `json:"content"`
	UserDisplayName string `json:"user_display_name"`
}

type CommentResponse struct {
	CommentID       string `json:"comment_id"`
	ClipID          string `json:"clip_id"`
	UserID          string `json:"user_id"`
	UserDisplayName string `json:"user_display_name"`
	Content         string `json:"content"`
	CreatedAt       string `json:"created_at"`
}

type CommentListResponse struct {
	Items []CommentResponse `json:"items"`
}
