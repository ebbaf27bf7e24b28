package domain

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"
)

// Status is the display status of an event on the public timeline.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// DateFormat is the wire format for event dates (calendar date, no time part).
const DateFormat = "2006-01-02"

// Event represents a club event on the public timeline.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Image       string    `json:"image,omitempty"`
	Location    string    `json:"location,omitempty"`
	Featured    bool      `json:"featured"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateEventData is the patch contract for event updates. Nil fields are
// left unchanged. Slug is never set directly; it is regenerated from Title.
type UpdateEventData struct {
	Title       *string
	Date        *time.Time
	Description *string
	Content     *string
	Image       *string
	Location    *string
	Featured    *bool
	Status      *Status
}

var slugRunRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a title: lowercase, every run
// of characters outside [a-z0-9] collapsed to a single hyphen, and no
// leading or trailing hyphen.
func Slugify(title string) string {
	s := slugRunRegex.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// DeriveStatus computes the date-based status for an event. daysDiff is the
// ceiling of the distance from now to the event date in days: more than a
// week out is upcoming, within the week (including today) is live, and past
// dates are completed. A manually pinned "ongoing" status is sticky and is
// never overridden for past dates, so multi-day happenings survive the sweep.
func DeriveStatus(eventDate, now time.Time, current Status) Status {
	daysDiff := int(math.Ceil(eventDate.Sub(now).Hours() / 24))
	switch {
	case daysDiff > 7:
		return StatusUpcoming
	case daysDiff >= 0:
		return StatusLive
	case current == StatusOngoing:
		return StatusOngoing
	default:
		return StatusCompleted
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, patch UpdateEventData, slug *string) (*Event, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, id string, patch UpdateEventData) (*Event, error)
	SetStatus(ctx context.Context, id string, status Status) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	SyncStatuses(ctx context.Context) (int, error)
}
