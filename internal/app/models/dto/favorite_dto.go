package dto

// AddFavoriteRequest represents a request to favorite a program.
// ProgramID is the external program identifier.
type AddFavoriteRequest struct {
	ProgramID string `json:"program_id" binding:"required"`
}

// CheckFavoriteResponse is the boolean probe result for a single program.
type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}
