package match

import (
	mw "github.com/DhavalSuthar-24/pitchside/internal/middleware"
	"github.com/DhavalSuthar-24/pitchside/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, matchController *MatchController, idp mw.IdentityProvider) {
	// Read routes; a credential is optional and widens what the caller can see
	publicRoutes := router.Group("/matches")
	publicRoutes.Use(mw.OptionalAuthMiddleware(idp))
	{
		publicRoutes.GET("", matchController.ListMatches)
		publicRoutes.GET("/:id", matchController.GetMatch)
		publicRoutes.GET("/:id/teams", matchController.ListTeams)
		publicRoutes.GET("/:id/teams/:team_id/participants", matchController.ListParticipants)
		publicRoutes.GET("/:id/umpires", matchController.ListUmpires)
	}

	// Authenticated routes
	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(idp))
	{
		authRoutes.POST("", matchController.CreateMatch)
		authRoutes.PUT("/:id", matchController.UpdateMatch)
		authRoutes.POST("/:id/postpone", matchController.PostponeMatch)

		// Roster
		authRoutes.POST("/:id/join", matchController.JoinMatch)
		authRoutes.POST("/:id/leave", matchController.LeaveMatch)
		authRoutes.POST("/:id/teams", matchController.AddTeam)
		authRoutes.PUT("/:id/teams/:team_id", matchController.UpdateTeam)
		authRoutes.POST("/:id/umpires", matchController.AddUmpire)
		authRoutes.PUT("/:id/umpires/:umpire_id", matchController.UpdateUmpire)
		authRoutes.DELETE("/:id/umpires/:umpire_id", matchController.RemoveUmpire)

		// Match status updates
		authRoutes.POST("/:id/start", matchController.StartMatch)
		authRoutes.POST("/:id/complete", matchController.CompleteMatch)
		authRoutes.POST("/:id/cancel", matchController.CancelMatch)
	}

	// Admin routes
	adminRoutes := router.Group("/admin/teams")
	adminRoutes.Use(mw.AuthMiddleware(idp))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("/:team_id/reconcile", matchController.ReconcileTeam)
	}
}
