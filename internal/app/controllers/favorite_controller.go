package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// FavoriteController handles a student's favorite programs. All routes sit
// behind the student guard; the acting student always comes from the
// resolved identity, never from request data.
type FavoriteController struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController
func NewFavoriteController(favoriteService *services.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

// ListFavorites returns the logged-in student's favorites
func (c *FavoriteController) ListFavorites(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	favorites, err := c.favoriteService.List(ctx, identity.Student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite favorites a program for the logged-in student
func (c *FavoriteController) AddFavorite(ctx *gin.Context) {
	var req dto.AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	identity := middleware.CurrentIdentity(ctx)
	favorite, err := c.favoriteService.Add(ctx, identity.Student.ID, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite deletes the logged-in student's favorite for the program
// in the path
func (c *FavoriteController) RemoveFavorite(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	if err := c.favoriteService.Remove(ctx, identity.Student.ID, ctx.Param("programId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Favorite removed"})
}

// CheckFavorite reports whether the logged-in student has favorited the
// program in the path
func (c *FavoriteController) CheckFavorite(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)
	isFavorite, err := c.favoriteService.Check(ctx, identity.Student.ID, ctx.Param("programId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CheckFavoriteResponse{IsFavorite: isFavorite})
}
