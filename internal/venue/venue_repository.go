// venue/repository.go
package venue

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrVenueNotFound = errors.New("venue not found")

// VenueRepository interface defines the database operations for venues
type VenueRepository interface {
	CreateVenue(venue *Venue) error
	GetVenueByID(id uint) (*Venue, error)
	GetVenueBySlug(slug string) (*Venue, error)
	GetAllVenues(page, limit int) ([]Venue, int64, error)
	WithContext(ctx context.Context) VenueRepository
}

type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) CreateVenue(venue *Venue) error {
	return r.db.Create(venue).Error
}

func (r *venueRepository) GetVenueByID(id uint) (*Venue, error) {
	var venue Venue
	if err := r.db.First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) GetVenueBySlug(slug string) (*Venue, error) {
	var venue Venue
	if err := r.db.Where("slug = ?", slug).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) GetAllVenues(page, limit int) ([]Venue, int64, error) {
	var venues []Venue
	var total int64

	query := r.db.Model(&Venue{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&venues).Error; err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *venueRepository) WithContext(ctx context.Context) VenueRepository {
	return &venueRepository{db: r.db.WithContext(ctx)}
}
