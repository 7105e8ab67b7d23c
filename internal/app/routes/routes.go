package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/controllers"
	"github.com/abroadly/abroadly/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	alumniController *controllers.AlumniController,
	programController *controllers.ProgramController,
	reviewController *controllers.ReviewController,
	favoriteController *controllers.FavoriteController,
	profileController *controllers.ProfileController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	// Every route sees the request session; identity resolution only happens
	// behind the guards below.
	router.Use(sessionMiddleware.Attach())

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public program catalog ---
	programs := v1.Group("/programs")
	{
		programs.GET("", programController.ListPrograms)
		programs.GET("/:programId", programController.GetProgram)
		programs.GET("/:programId/alumni", alumniController.ListByProgram)
		programs.GET("/:programId/reviews", reviewController.ListReviews)

		// Review creation is the one alumni-only write in the API.
		programs.POST("/:programId/reviews",
			sessionMiddleware.RequireAlumni("Only alumni can submit reviews"),
			reviewController.CreateReview)
	}

	// --- Account routes ---
	accounts := v1.Group("/accounts")
	{
		accounts.POST("/signup", authController.Signup)
		accounts.POST("/login", authController.Login)
		accounts.POST("/logout", authController.Logout)

		alumni := accounts.Group("/alumni")
		{
			alumni.POST("/signup", alumniController.Signup)
			alumni.POST("/login", alumniController.Login)
			alumni.POST("/logout", alumniController.Logout)
		}

		// Profile is readable by either principal; writes are student-only
		// since alumni have no profile row.
		accounts.GET("/profile", sessionMiddleware.RequireStudentOrAlumni(), profileController.GetProfile)
		accounts.PATCH("/profile", sessionMiddleware.RequireStudent(), profileController.UpdateProfile)

		favorites := accounts.Group("/favorites")
		favorites.Use(sessionMiddleware.RequireStudent())
		{
			favorites.GET("", favoriteController.ListFavorites)
			favorites.POST("", favoriteController.AddFavorite)
			favorites.DELETE("/:programId", favoriteController.RemoveFavorite)
			favorites.GET("/:programId/check", favoriteController.CheckFavorite)
		}
	}
}
