package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"clubsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHeroRepo is an in-memory HeroSlideRepository for tests.
type fakeHeroRepo struct {
	byID          map[string]*domain.HeroSlide
	nextID        int
	updateOrdErrs map[string]error // per-slide UpdateOrder failures
	listErr       error
	onUpdateOrder func(id string, order int) // runs after a write lands
}

func newFakeHeroRepo() *fakeHeroRepo {
	return &fakeHeroRepo{
		byID:   make(map[string]*domain.HeroSlide),
		nextID: 1,
	}
}

func (f *fakeHeroRepo) Create(ctx context.Context, s *domain.HeroSlide) error {
	s.ID = fmt.Sprintf("slide-%d", f.nextID)
	f.nextID++
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeHeroRepo) GetByID(ctx context.Context, id string) (*domain.HeroSlide, error) {
	if s, ok := f.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeHeroRepo) List(ctx context.Context, activeOnly bool) ([]*domain.HeroSlide, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.HeroSlide, 0, len(f.byID))
	for _, s := range f.byID {
		if activeOnly && !s.Active {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeHeroRepo) Update(ctx context.Context, id string, patch domain.UpdateHeroSlideData) (*domain.HeroSlide, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Image != nil {
		s.Image = *patch.Image
	}
	if patch.Link != nil {
		s.Link = *patch.Link
	}
	if patch.Order != nil {
		s.Order = *patch.Order
	}
	if patch.Active != nil {
		s.Active = *patch.Active
	}
	cp := *s
	return &cp, nil
}

func (f *fakeHeroRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	if err := f.updateOrdErrs[id]; err != nil {
		return err
	}
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Order = order
	if f.onUpdateOrder != nil {
		f.onUpdateOrder(id, order)
	}
	return nil
}

func (f *fakeHeroRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestHeroService(repo domain.HeroSlideRepository, images domain.ImageStore) *heroSlideService {
	return &heroSlideService{
		slideRepo:      repo,
		images:         images,
		logger:         testLogger(),
		contextTimeout: 2 * time.Second,
		now:            func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func seedSlides(t *testing.T, svc *heroSlideService, n int) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		slide := &domain.HeroSlide{
			Title:  fmt.Sprintf("Slide %d", i),
			Image:  fmt.Sprintf("https://cdn.example.com/hero/slide-%d.png", i),
			Order:  i,
			Active: true,
		}
		require.NoError(t, svc.CreateSlide(ctx, slide))
		ids = append(ids, slide.ID)
	}
	return ids
}

func TestHeroSlideService_CreateSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("success with default link", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)

		slide := &domain.HeroSlide{Title: "Welcome", Image: "https://cdn/x.png", Active: true}
		require.NoError(t, svc.CreateSlide(ctx, slide))
		assert.Equal(t, domain.DefaultSlideLink, slide.Link)
		assert.NotEmpty(t, slide.ID)
	})

	t.Run("explicit link is kept", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)

		slide := &domain.HeroSlide{Title: "Welcome", Image: "https://cdn/x.png", Link: "/events"}
		require.NoError(t, svc.CreateSlide(ctx, slide))
		assert.Equal(t, "/events", slide.Link)
	})

	t.Run("validation failures", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)

		err := svc.CreateSlide(ctx, &domain.HeroSlide{Image: "https://cdn/x.png"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		err = svc.CreateSlide(ctx, &domain.HeroSlide{Title: "No Image"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestHeroSlideService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHeroRepo()
	svc := newTestHeroService(repo, nil)
	ids := seedSlides(t, svc, 3)

	updated, err := svc.ToggleActive(ctx, ids[1], false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	// Toggling visibility never moves the slide.
	assert.Equal(t, 2, updated.Order)
	assert.Equal(t, 1, repo.byID[ids[0]].Order)
	assert.Equal(t, 3, repo.byID[ids[2]].Order)

	updated, err = svc.ToggleActive(ctx, ids[1], true)
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, 2, updated.Order)

	_, err = svc.ToggleActive(ctx, "slide-missing", true)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestHeroSlideService_ListSlides(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHeroRepo()
	svc := newTestHeroService(repo, nil)
	ids := seedSlides(t, svc, 3)

	_, err := svc.ToggleActive(ctx, ids[1], false)
	require.NoError(t, err)

	all, err := svc.ListSlides(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	active, err := svc.ListSlides(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[1].ID)
}

func TestHeroSlideService_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("permutation becomes the new dense ranking", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 3)

		// C, A, B
		require.NoError(t, svc.Reorder(ctx, []string{ids[2], ids[0], ids[1]}))

		assert.Equal(t, 1, repo.byID[ids[2]].Order)
		assert.Equal(t, 2, repo.byID[ids[0]].Order)
		assert.Equal(t, 3, repo.byID[ids[1]].Order)

		listed, err := svc.ListSlides(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, []string{ids[2], ids[0], ids[1]}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
	})

	t.Run("partial list rejected before any write", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 3)

		err := svc.Reorder(ctx, []string{ids[0], ids[1]})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		// Ordering untouched.
		for i, id := range ids {
			assert.Equal(t, i+1, repo.byID[id].Order)
		}
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 2)

		err := svc.Reorder(ctx, []string{ids[0], "slide-stale"})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 2)

		err := svc.Reorder(ctx, []string{ids[0], ids[0]})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("interleaved reorders are last-write-wins per slide", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 3)
		a, b, c := ids[0], ids[1], ids[2]

		// After the first write of the outer reorder lands, run a second
		// full reorder to completion, then let the outer one finish. There
		// is no conflict detection: each slide keeps whichever write hit it
		// last, and the combined result need not be a dense ranking.
		interleaved := false
		repo.onUpdateOrder = func(string, int) {
			if interleaved {
				return
			}
			interleaved = true
			require.NoError(t, svc.Reorder(ctx, []string{b, c, a}))
		}

		require.NoError(t, svc.Reorder(ctx, []string{c, a, b}))

		// Outer wrote c=1; inner then wrote b=1, c=2, a=3; outer finished
		// with a=2, b=3. Slides a and c end up sharing order 2.
		assert.Equal(t, 2, repo.byID[a].Order)
		assert.Equal(t, 3, repo.byID[b].Order)
		assert.Equal(t, 2, repo.byID[c].Order)
	})

	t.Run("write failure reported to caller", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 3)

		repo.updateOrdErrs = map[string]error{ids[0]: errors.New("write failed")}

		err := svc.Reorder(ctx, []string{ids[2], ids[0], ids[1]})
		require.Error(t, err)
		// The first write landed before the failure; the caller must refetch.
		assert.Equal(t, 1, repo.byID[ids[2]].Order)
	})
}

func TestHeroSlideService_DeleteSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("compacts remaining slides to a dense ranking", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		ids := seedSlides(t, svc, 3)

		require.NoError(t, svc.DeleteSlide(ctx, ids[0]))

		assert.Equal(t, 1, repo.byID[ids[1]].Order)
		assert.Equal(t, 2, repo.byID[ids[2]].Order)
	})

	t.Run("deletes the stored image", func(t *testing.T) {
		repo := newFakeHeroRepo()
		images := &fakeImageStore{}
		svc := newTestHeroService(repo, images)

		slide := &domain.HeroSlide{Title: "Welcome", Image: "https://cdn.example.com/hero/abc.webp", Order: 1}
		require.NoError(t, svc.CreateSlide(ctx, slide))
		require.NoError(t, svc.DeleteSlide(ctx, slide.ID))
		assert.Equal(t, []string{"hero/abc.webp"}, images.deleted)
	})

	t.Run("external image URL is never deleted from the bucket", func(t *testing.T) {
		repo := newFakeHeroRepo()
		images := &fakeImageStore{}
		svc := newTestHeroService(repo, images)

		slide := &domain.HeroSlide{Title: "External", Image: "https://example.com/img/photo.png", Order: 1}
		require.NoError(t, svc.CreateSlide(ctx, slide))
		require.NoError(t, svc.DeleteSlide(ctx, slide.ID))
		assert.Empty(t, images.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeHeroRepo()
		svc := newTestHeroService(repo, nil)
		err := svc.DeleteSlide(ctx, "slide-missing")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
