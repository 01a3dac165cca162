package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/DhavalSuthar-24/pitchside/internal/match"
	mw "github.com/DhavalSuthar-24/pitchside/internal/middleware"
	"github.com/DhavalSuthar-24/pitchside/internal/venue"
	responses "github.com/DhavalSuthar-24/pitchside/pkg/matchresponse"
)

// Dependencies are the handlers and collaborators the engine is built from.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   hclog.Logger
	Identity mw.IdentityProvider
	Matches  *match.MatchController
	Venues   *venue.VenueController
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", mw.RequestIDHeader},
		ExposeHeaders:    []string{mw.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(mw.RequestID())
	r.Use(mw.RequestLogger(deps.Logger.Named("http")))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			responses.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	match.MatchRoutes(api, deps.Matches, deps.Identity)
	venue.RegisterRoutes(api, deps.Venues, deps.Identity)

	return r
}
