package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubsite/internal/domain"
)

// maxSlugAttempts bounds the collision-suffix search on slug generation.
const maxSlugAttempts = 100

type eventService struct {
	eventRepo      domain.EventRepository
	images         domain.ImageStore
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository, images domain.ImageStore, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		images:         images,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if event.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if event.Status == "" {
		event.Status = domain.DeriveStatus(event.Date, s.now(), "")
	} else if !domain.ValidStatus(event.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, event.Status)
	}

	slug, err := s.uniqueSlug(ctx, event.Title, "")
	if err != nil {
		return fmt.Errorf("generate slug: %w", err)
	}
	event.Slug = slug
	event.CreatedAt = s.now()
	event.UpdatedAt = event.CreatedAt

	return s.eventRepo.Create(ctx, event)
}

// uniqueSlug slugifies the title and, if that slug is already taken by a
// different event, appends -2, -3, ... until a free one is found.
// excludeID lets an event keep its own slug across title-preserving updates.
func (s *eventService) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		return "", fmt.Errorf("%w: title produces an empty slug", domain.ErrInvalidInput)
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		existing, err := s.eventRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if existing.ID == excludeID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.UpdateEventData) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
	}

	// Slug follows the title: regenerated whenever the title is in the patch.
	var slug *string
	if patch.Title != nil {
		newSlug, err := s.uniqueSlug(ctx, *patch.Title, id)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		slug = &newSlug
	}

	updated, err := s.eventRepo.Update(ctx, id, patch, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	// Intentionally no date consistency check: admins may force any status
	// and the next sweep respects a pinned "ongoing".
	updated, err := s.eventRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set status: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// Best effort: a leaked object is preferable to a failed delete.
	// Only objects the store recognizes as its own are removed; externally
	// hosted image URLs are left alone.
	if s.images != nil {
		if key, ok := s.images.KeyFromURL(event.Image); ok {
			if err := s.images.Delete(ctx, key); err != nil {
				s.logger.Warn("delete event image failed", "event_id", id, "key", key, "err", err)
			}
		}
	}
	return nil
}

// SyncStatuses applies the date-based status derivation to every event and
// persists the ones whose status changed. Returns the number of events
// updated. Per-event write failures are logged and skipped so one bad row
// cannot stall the whole sweep.
func (s *eventService) SyncStatuses(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	updated := 0
	for _, e := range events {
		derived := domain.DeriveStatus(e.Date, now, e.Status)
		if derived == e.Status {
			continue
		}
		if _, err := s.eventRepo.UpdateStatus(ctx, e.ID, derived); err != nil {
			s.logger.Error("sweep status update failed", "event_id", e.ID, "err", err)
			continue
		}
		updated++
	}
	return updated, nil
}
