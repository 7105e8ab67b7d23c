package dto

// CreateReviewRequest represents an alumni review submission. The author is
// taken from the resolved session identity, never from the request body.
type CreateReviewRequest struct {
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}
