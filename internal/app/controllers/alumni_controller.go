package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// AlumniController handles alumni signup, login, logout and the per-program
// alumni directory
type AlumniController struct {
	alumniService *services.AlumniService
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService *services.AlumniService) *AlumniController {
	return &AlumniController{
		alumniService: alumniService,
	}
}

// Signup registers a new alumni account and logs it in
func (c *AlumniController) Signup(ctx *gin.Context) {
	var req dto.AlumniSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	alumni, err := c.alumniService.Signup(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sess := middleware.CurrentSession(ctx)
	if err := sess.SetAlumniID(ctx.Request.Context(), alumni.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AlumniAuthResponse{
		Message: "Signup successful",
		Alumni:  dto.FromAlumni(alumni),
	})
}

// Login verifies alumni credentials and binds the alumni to the session
func (c *AlumniController) Login(ctx *gin.Context) {
	var req dto.AlumniLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	alumni, err := c.alumniService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sess := middleware.CurrentSession(ctx)
	if err := sess.SetAlumniID(ctx.Request.Context(), alumni.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AlumniAuthResponse{
		Message: "Login successful",
		Alumni:  dto.FromAlumni(alumni),
	})
}

// Logout clears the alumni identity from the session. The student slot, if
// present, is left untouched.
func (c *AlumniController) Logout(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)
	if err := sess.ClearAlumniID(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// ListByProgram returns the alumni who attended the program in the path
func (c *AlumniController) ListByProgram(ctx *gin.Context) {
	alumniList, err := c.alumniService.ListByProgram(ctx, ctx.Param("programId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AlumniResponse, 0, len(alumniList))
	for _, alumni := range alumniList {
		responses = append(responses, dto.FromAlumni(alumni))
	}
	ctx.JSON(http.StatusOK, gin.H{"alumni": responses})
}
