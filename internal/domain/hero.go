package domain

import (
	"context"
	"time"
)

// DefaultSlideLink is where a slide points when the admin leaves link empty.
const DefaultSlideLink = "/ourJourney"

// HeroSlide is one item in the home-page carousel. Order establishes the
// display sequence; after a completed reorder the order values across all
// slides form a dense ranking starting at 1.
type HeroSlide struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Link      string    `json:"link"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateHeroSlideData is the patch contract for slide updates. Nil fields
// are left unchanged.
type UpdateHeroSlideData struct {
	Title  *string
	Image  *string
	Link   *string
	Order  *int
	Active *bool
}

// HeroSlideRepository defines the interface for slide storage. The stored
// column for Order is order_index; the repository owns that mapping.
type HeroSlideRepository interface {
	Create(ctx context.Context, slide *HeroSlide) error
	GetByID(ctx context.Context, id string) (*HeroSlide, error)
	List(ctx context.Context, activeOnly bool) ([]*HeroSlide, error)
	Update(ctx context.Context, id string, patch UpdateHeroSlideData) (*HeroSlide, error)
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

// HeroSlideService defines the business operations on slides.
type HeroSlideService interface {
	CreateSlide(ctx context.Context, slide *HeroSlide) error
	GetSlideByID(ctx context.Context, id string) (*HeroSlide, error)
	ListSlides(ctx context.Context, activeOnly bool) ([]*HeroSlide, error)
	UpdateSlide(ctx context.Context, id string, patch UpdateHeroSlideData) (*HeroSlide, error)
	ToggleActive(ctx context.Context, id string, active bool) (*HeroSlide, error)
	Reorder(ctx context.Context, slideIDs []string) error
	DeleteSlide(ctx context.Context, id string) error
}
