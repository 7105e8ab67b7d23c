package dto

import "github.com/abroadly/abroadly/internal/app/models"

// UpdateProfileRequest represents a partial student profile update.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Year            *string `json:"year"`
	Major           *string `json:"major"`
	StudyAbroadTerm *string `json:"study_abroad_term"`
}

// ProfileResponse is the student profile payload.
type ProfileResponse struct {
	Year            string `json:"year"`
	Major           string `json:"major"`
	StudyAbroadTerm string `json:"study_abroad_term"`
}

// StudentProfileResponse bundles account and profile data for the
// combined profile endpoint.
type StudentProfileResponse struct {
	User    StudentResponse `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

// FromProfile converts a models.Profile to a ProfileResponse
func FromProfile(p *models.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		Year:            p.Year,
		Major:           p.Major,
		StudyAbroadTerm: p.StudyAbroadTerm,
	}
}
