package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// AuthController handles student signup, login and logout
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Signup registers a new student account and logs it in
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.authService.Signup(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sess := middleware.CurrentSession(ctx)
	if err := sess.SetStudentID(ctx.Request.Context(), student.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Signup successful",
		User:    dto.FromStudent(student),
	})
}

// Login verifies student credentials and binds the student to the session
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sess := middleware.CurrentSession(ctx)
	if err := sess.SetStudentID(ctx.Request.Context(), student.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.FromStudent(student),
	})
}

// Logout clears the student identity from the session. Logging out an
// already anonymous session succeeds; the endpoint is idempotent.
func (c *AuthController) Logout(ctx *gin.Context) {
	sess := middleware.CurrentSession(ctx)
	if err := sess.ClearStudentID(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}
