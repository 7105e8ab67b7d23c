package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// ProfileController handles the combined account/profile endpoint. Students
// get their stored profile; alumni get their account data, since alumni have
// no separate profile row.
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetProfile returns the logged-in principal's account and profile data.
// A student's profile row is created on first access.
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	if identity.IsAlumni() {
		ctx.JSON(http.StatusOK, gin.H{"alumni": dto.FromAlumni(identity.Alumni)})
		return
	}

	profile, err := c.profileService.Get(ctx, identity.Student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentProfileResponse{
		User:    dto.FromStudent(identity.Student),
		Profile: dto.FromProfile(profile),
	})
}

// UpdateProfile applies a partial update to the logged-in student's profile
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	profile, err := c.profileService.Update(ctx, identity.Student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentProfileResponse{
		User:    dto.FromStudent(identity.Student),
		Profile: dto.FromProfile(profile),
	})
}
