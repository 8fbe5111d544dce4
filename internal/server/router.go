package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lrmsph/lrms-backend/internal/handlers"
	"github.com/lrmsph/lrms-backend/internal/middleware"
)

type RouterConfig struct {
	MaterialHandler *handlers.MaterialHandler
	TaxonomyHandler *handlers.TaxonomyHandler
	UserHandler     *handlers.UserHandler
	PresenceHandler *handlers.PresenceHandler
	AuthMiddleware  *middleware.AuthMiddleware
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Materials and taxonomy
	router.POST("/upload-materials", cfg.MaterialHandler.UploadMaterials)
	router.POST("/upload-material-file/:materialId", cfg.MaterialHandler.UploadMaterialFile)
	router.GET("/getAllMaterials", cfg.MaterialHandler.GetAllMaterials)

	router.POST("/create-grade-levels", cfg.TaxonomyHandler.CreateGradeLevel)
	router.POST("/create-learning-areas", cfg.TaxonomyHandler.CreateLearningArea)
	router.POST("/create-tracks", cfg.TaxonomyHandler.CreateTrack)
	router.POST("/create-components", cfg.TaxonomyHandler.CreateComponent)
	router.POST("/create-strands", cfg.TaxonomyHandler.CreateStrand)
	router.POST("/create-types", cfg.TaxonomyHandler.CreateType)
	router.POST("/create-subject-types", cfg.TaxonomyHandler.CreateSubjectType)

	// Realtime presence
	router.GET("/online-users", cfg.PresenceHandler.OnlineUsers)
	router.GET("/sse/stream", cfg.PresenceHandler.Stream)

	// Users
	users := router.Group("/users")
	{
		users.POST("/register", cfg.UserHandler.Register)
		users.POST("/login", cfg.UserHandler.Login)
		users.POST("/resetPassword", cfg.UserHandler.ResetPassword)
	}

	protected := router.Group("/users")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/getAllUsers", cfg.UserHandler.GetAllUsers)
		protected.DELETE("/deleteUser/:id", cfg.UserHandler.DeleteUser)
		protected.PUT("/updateUser/:id", cfg.UserHandler.UpdateUser)
		protected.PUT("/updateProfile/:id", cfg.UserHandler.UpdateProfile)
		protected.PATCH("/changePassword/:id", cfg.UserHandler.ChangePassword)
	}

	return router
}
