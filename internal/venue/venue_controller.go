package venue

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	responses "github.com/DhavalSuthar-24/pitchside/pkg/matchresponse"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// VenueController handles venue-related HTTP requests
type VenueController struct {
	repo VenueRepository
}

// NewVenueController creates a new venue controller
func NewVenueController(repo VenueRepository) *VenueController {
	return &VenueController{repo: repo}
}

// VenueInput is the payload for creating a venue
type VenueInput struct {
	Name     string `json:"name" binding:"required,max=150"`
	Location string `json:"location" binding:"required,max=255"`
}

// CreateVenue godoc
// @Summary Create a new venue
// @Description Adds a venue to the directory used when creating matches
// @Tags venues
// @Accept json
// @Produce json
// @Param venue body VenueInput true "Venue information"
// @Success 201 {object} Venue "Venue created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 409 {object} map[string]interface{} "Venue already exists"
// @Router /admin/venues [post]
// @Security BearerAuth
func (c *VenueController) CreateVenue(ctx *gin.Context) {
	var input VenueInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		responses.ValidationErrorResponse(ctx, err)
		return
	}

	name := strings.TrimSpace(input.Name)
	venue := &Venue{
		Name:     name,
		Slug:     slug.Make(name),
		Location: strings.TrimSpace(input.Location),
	}
	if err := c.repo.WithContext(ctx.Request.Context()).CreateVenue(venue); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.CodedErrorResponse(ctx, http.StatusConflict, "Conflict", "A venue with this name already exists")
			return
		}
		responses.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to create venue")
		return
	}

	responses.SuccessResponse(ctx, http.StatusCreated, gin.H{
		"message": "Venue created successfully",
		"venue":   venue,
	})
}

// ListVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /venues [get]
func (c *VenueController) ListVenues(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	venues, total, err := c.repo.WithContext(ctx.Request.Context()).GetAllVenues(page, perPage)
	if err != nil {
		responses.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}
	responses.PaginatedResponse(ctx, http.StatusOK, venues, page, perPage, total)
}
