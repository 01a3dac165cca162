package venue

import (
	mw "github.com/DhavalSuthar-24/pitchside/internal/middleware"
	"github.com/DhavalSuthar-24/pitchside/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up venue routes
func RegisterRoutes(r *gin.RouterGroup, controller *VenueController, idp mw.IdentityProvider) {
	r.GET("/venues", controller.ListVenues)

	admin := r.Group("/admin/venues")
	admin.Use(mw.AuthMiddleware(idp), rmiddleware.AdminMiddleware())
	{
		admin.POST("", controller.CreateVenue)
	}
}
