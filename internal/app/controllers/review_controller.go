package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// ReviewController handles program reviews
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// ListReviews returns a program's reviews, newest first
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	reviews, err := c.reviewService.ListForProgram(ctx, ctx.Param("programId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview stores a review authored by the logged-in alumni. The route
// sits behind the alumni guard, so the identity here is always an alumni.
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	review, err := c.reviewService.Create(ctx, identity.Alumni.ID, ctx.Param("programId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	review.AlumniFirstName = identity.Alumni.FirstName
	review.AlumniLastName = identity.Alumni.LastName
	review.AlumniGraduationYear = identity.Alumni.GraduationYear

	ctx.JSON(http.StatusCreated, review)
}
