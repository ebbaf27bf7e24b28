package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clubsite/internal/domain"
)

// The stored column for a slide's position is order_index ("order" is a
// reserved word); link and active are nullable in the legacy schema, so
// the read path substitutes the defaults.
const heroColumns = "id, title, image, link, order_index, active, created_at, updated_at"

type heroSlideRepository struct {
	DB *sql.DB
}

func NewHeroSlideRepository(db *sql.DB) domain.HeroSlideRepository {
	return &heroSlideRepository{
		DB: db,
	}
}

func scanHeroSlide(row rowScanner) (*domain.HeroSlide, error) {
	s := &domain.HeroSlide{}
	var linkNull sql.NullString
	var orderNull sql.NullInt64
	var activeNull sql.NullBool
	err := row.Scan(
		&s.ID, &s.Title, &s.Image, &linkNull, &orderNull, &activeNull,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Link = domain.DefaultSlideLink
	if linkNull.Valid && linkNull.String != "" {
		s.Link = linkNull.String
	}
	if orderNull.Valid {
		s.Order = int(orderNull.Int64)
	}
	s.Active = true
	if activeNull.Valid {
		s.Active = activeNull.Bool
	}
	return s, nil
}

func (r *heroSlideRepository) Create(ctx context.Context, s *domain.HeroSlide) error {
	query := `
		INSERT INTO hero_slides (title, image, link, order_index, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.Title, s.Image, s.Link, s.Order, s.Active, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *heroSlideRepository) GetByID(ctx context.Context, id string) (*domain.HeroSlide, error) {
	query := fmt.Sprintf(`SELECT %s FROM hero_slides WHERE id = $1`, heroColumns)
	s, err := scanHeroSlide(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *heroSlideRepository) List(ctx context.Context, activeOnly bool) ([]*domain.HeroSlide, error) {
	query := fmt.Sprintf(`SELECT %s FROM hero_slides ORDER BY order_index ASC`, heroColumns)
	if activeOnly {
		query = fmt.Sprintf(`SELECT %s FROM hero_slides WHERE active = TRUE ORDER BY order_index ASC`, heroColumns)
	}
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slides := make([]*domain.HeroSlide, 0)
	for rows.Next() {
		s, err := scanHeroSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

func (r *heroSlideRepository) Update(ctx context.Context, id string, patch domain.UpdateHeroSlideData) (*domain.HeroSlide, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.Link != nil {
		add("link", *patch.Link)
	}
	if patch.Order != nil {
		add("order_index", *patch.Order)
	}
	if patch.Active != nil {
		add("active", *patch.Active)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE hero_slides SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, heroColumns)
	s, err := scanHeroSlide(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *heroSlideRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	query := `UPDATE hero_slides SET order_index = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, order, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *heroSlideRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hero_slides WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
