package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubsite/internal/domain"
)

type heroSlideService struct {
	slideRepo      domain.HeroSlideRepository
	images         domain.ImageStore
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewHeroSlideService(slideRepo domain.HeroSlideRepository, images domain.ImageStore, logger *slog.Logger, timeout time.Duration) domain.HeroSlideService {
	return &heroSlideService{
		slideRepo:      slideRepo,
		images:         images,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *heroSlideService) CreateSlide(ctx context.Context, slide *domain.HeroSlide) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if slide.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if slide.Image == "" {
		return fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}
	if slide.Link == "" {
		slide.Link = domain.DefaultSlideLink
	}
	slide.CreatedAt = s.now()
	slide.UpdatedAt = slide.CreatedAt

	return s.slideRepo.Create(ctx, slide)
}

func (s *heroSlideService) GetSlideByID(ctx context.Context, id string) (*domain.HeroSlide, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slide, err := s.slideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slide: %w", err)
	}
	return slide, nil
}

func (s *heroSlideService) ListSlides(ctx context.Context, activeOnly bool) ([]*domain.HeroSlide, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slides, err := s.slideRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	return slides, nil
}

func (s *heroSlideService) UpdateSlide(ctx context.Context, id string, patch domain.UpdateHeroSlideData) (*domain.HeroSlide, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.slideRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update slide: %w", err)
	}
	return updated, nil
}

func (s *heroSlideService) ToggleActive(ctx context.Context, id string, active bool) (*domain.HeroSlide, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Single-field patch; order is never touched here.
	updated, err := s.slideRepo.Update(ctx, id, domain.UpdateHeroSlideData{Active: &active})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle slide: %w", err)
	}
	return updated, nil
}

// Reorder assigns order i+1 to the slide at position i. The id list must
// cover the current slide set exactly; a partial or stale list is rejected
// before any write happens. The writes themselves are independent single-row
// updates: if one fails the operation reports failure and the caller must
// refetch authoritative state. Two admins reordering at once race
// last-write-wins per slide; there is no conflict detection.
func (s *heroSlideService) Reorder(ctx context.Context, slideIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.slideRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("list slides: %w", err)
	}
	if len(slideIDs) != len(current) {
		return fmt.Errorf("%w: got %d slide ids, have %d slides", domain.ErrInvalidInput, len(slideIDs), len(current))
	}
	known := make(map[string]struct{}, len(current))
	for _, slide := range current {
		known[slide.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(slideIDs))
	for _, id := range slideIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown slide id %s", domain.ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate slide id %s", domain.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	for i, id := range slideIDs {
		if err := s.slideRepo.UpdateOrder(ctx, id, i+1); err != nil {
			return fmt.Errorf("reorder slide %s: %w", id, err)
		}
	}
	return nil
}

func (s *heroSlideService) DeleteSlide(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slide, err := s.slideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get slide: %w", err)
	}
	if err := s.slideRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete slide: %w", err)
	}

	// Re-compact the remaining slides to a dense 1..N ranking so a deletion
	// cannot leave gaps until the next explicit reorder. Best effort: the
	// delete itself already succeeded.
	remaining, err := s.slideRepo.List(ctx, false)
	if err != nil {
		s.logger.Warn("compact after delete: list failed", "err", err)
	} else {
		for i, rem := range remaining {
			if rem.Order == i+1 {
				continue
			}
			if err := s.slideRepo.UpdateOrder(ctx, rem.ID, i+1); err != nil {
				s.logger.Warn("compact after delete: update failed", "slide_id", rem.ID, "err", err)
			}
		}
	}

	// Only objects the store recognizes as its own are removed; externally
	// hosted image URLs are left alone.
	if s.images != nil {
		if key, ok := s.images.KeyFromURL(slide.Image); ok {
			if err := s.images.Delete(ctx, key); err != nil {
				s.logger.Warn("delete slide image failed", "slide_id", id, "key", key, "err", err)
			}
		}
	}
	return nil
}
