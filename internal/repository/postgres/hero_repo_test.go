package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"clubsite/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var slideCreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func slideRow(id, title string, order int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "image", "link", "order_index", "active", "created_at", "updated_at",
	}).AddRow(
		id, title, "https://cdn/slide.png", "/events", order, true, slideCreatedAt, slideCreatedAt,
	)
}

func TestHeroSlideRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	slide := &domain.HeroSlide{
		Title:     "Welcome",
		Image:     "https://cdn/slide.png",
		Link:      "/events",
		Order:     3,
		Active:    true,
		CreatedAt: slideCreatedAt,
		UpdatedAt: slideCreatedAt,
	}
	mock.ExpectQuery(`INSERT INTO hero_slides \(title, image, link, order_index, active, created_at, updated_at\)`).
		WithArgs("Welcome", "https://cdn/slide.png", "/events", 3, true, slideCreatedAt, slideCreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("slide-1"))

	repo := NewHeroSlideRepository(db)
	require.NoError(t, repo.Create(ctx, slide))
	require.Equal(t, "slide-1", slide.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeroSlideRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		check      func(t *testing.T, got *domain.HeroSlide)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "slide-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-1").
					WillReturnRows(slideRow("slide-1", "Welcome", 1))
			},
			check: func(t *testing.T, got *domain.HeroSlide) {
				require.Equal(t, "slide-1", got.ID)
				require.Equal(t, "/events", got.Link)
				require.Equal(t, 1, got.Order)
				require.True(t, got.Active)
			},
		},
		{
			name: "null link and active get defaults",
			id:   "slide-legacy",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "title", "image", "link", "order_index", "active", "created_at", "updated_at",
				}).AddRow(
					"slide-legacy", "Old", "https://cdn/old.png", nil, nil, nil, slideCreatedAt, slideCreatedAt,
				)
				mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-legacy").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, got *domain.HeroSlide) {
				require.Equal(t, domain.DefaultSlideLink, got.Link)
				require.Zero(t, got.Order)
				require.True(t, got.Active)
			},
		},
		{
			name: "not found",
			id:   "slide-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewHeroSlideRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHeroSlideRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all slides ordered by position", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := slideRow("slide-1", "First", 1).
			AddRow("slide-2", "Second", "https://cdn/slide.png", "/events", 2, false, slideCreatedAt, slideCreatedAt)
		mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides ORDER BY order_index ASC`).
			WillReturnRows(rows)

		repo := NewHeroSlideRepository(db)
		got, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 1, got[0].Order)
		require.Equal(t, 2, got[1].Order)
		require.False(t, got[1].Active)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active only filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides WHERE active = TRUE ORDER BY order_index ASC`).
			WillReturnRows(slideRow("slide-1", "First", 1))

		repo := NewHeroSlideRepository(db)
		got, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides`).
			WillReturnError(sql.ErrConnDone)

		repo := NewHeroSlideRepository(db)
		got, err := repo.List(ctx, false)
		require.Error(t, err)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHeroSlideRepository_Update(t *testing.T) {
	ctx := context.Background()

	active := false
	title := "Renamed"

	tests := []struct {
		name    string
		patch   domain.UpdateHeroSlideData
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name:  "toggle active only",
			patch: domain.UpdateHeroSlideData{Active: &active},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "title", "image", "link", "order_index", "active", "created_at", "updated_at",
				}).AddRow(
					"slide-1", "Welcome", "https://cdn/slide.png", "/events", 1, false, slideCreatedAt, slideCreatedAt,
				)
				mock.ExpectQuery(`UPDATE hero_slides SET updated_at = NOW\(\), active = \$1`).
					WithArgs(false, "slide-1").
					WillReturnRows(rows)
			},
		},
		{
			name:  "rename",
			patch: domain.UpdateHeroSlideData{Title: &title},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE hero_slides SET updated_at = NOW\(\), title = \$1`).
					WithArgs("Renamed", "slide-1").
					WillReturnRows(slideRow("slide-1", "Renamed", 1))
			},
		},
		{
			name:  "empty patch falls back to fetch",
			patch: domain.UpdateHeroSlideData{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, image, link, order_index, active, created_at, updated_at FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-1").
					WillReturnRows(slideRow("slide-1", "Welcome", 1))
			},
		},
		{
			name:  "not found",
			patch: domain.UpdateHeroSlideData{Title: &title},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE hero_slides SET`).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewHeroSlideRepository(db)
			got, err := repo.Update(ctx, "slide-1", tt.patch)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, domain.ErrNotFound))
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHeroSlideRepository_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		order      int
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name:  "success",
			id:    "slide-1",
			order: 2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE hero_slides SET order_index = \$1, updated_at = NOW\(\) WHERE id = \$2`).
					WithArgs(2, "slide-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:  "not found",
			id:    "slide-missing",
			order: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE hero_slides SET order_index = \$1, updated_at = NOW\(\) WHERE id = \$2`).
					WithArgs(1, "slide-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewHeroSlideRepository(db)
			err = repo.UpdateOrder(ctx, tt.id, tt.order)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHeroSlideRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "slide-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   "slide-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   "slide-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM hero_slides WHERE id = \$1`).
					WithArgs("slide-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewHeroSlideRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
