package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"clubsite/internal/delivery/http/helpers"
	"clubsite/internal/domain"
)

// CreateHeroSlideRequest is the request body for POST /hero. Order is
// caller-supplied; active defaults to true when omitted.
type CreateHeroSlideRequest struct {
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link"`
	Order  int    `json:"order"`
	Active *bool  `json:"active"`
}

// Validate implements Validator.
func (c CreateHeroSlideRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Image == "" {
		errs = append(errs, "image is required")
	}
	return errs
}

// UpdateHeroSlideRequest is the request body for PATCH /hero/{slideID}.
// All fields optional; omitted fields are unchanged.
type UpdateHeroSlideRequest struct {
	Title  *string `json:"title"`
	Image  *string `json:"image"`
	Link   *string `json:"link"`
	Order  *int    `json:"order"`
	Active *bool   `json:"active"`
}

// Validate implements Validator.
func (u UpdateHeroSlideRequest) Validate() []string {
	var errs []string
	if u.Title != nil && *u.Title == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.Image != nil && *u.Image == "" {
		errs = append(errs, "image must not be empty")
	}
	return errs
}

// ToggleActiveRequest is the request body for PUT /hero/{slideID}/active.
type ToggleActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate implements Validator.
func (t ToggleActiveRequest) Validate() []string {
	if t.Active == nil {
		return []string{"active is required"}
	}
	return nil
}

// ReorderRequest is the request body for POST /hero/reorder. The list must
// contain every current slide id exactly once, in the desired display order.
type ReorderRequest struct {
	SlideIDs []string `json:"slide_ids"`
}

// Validate implements Validator.
func (r ReorderRequest) Validate() []string {
	if r.SlideIDs == nil {
		return []string{"slide_ids is required"}
	}
	return nil
}

// HeroSlideSuccessResponse is the success response envelope for single-slide operations.
type HeroSlideSuccessResponse struct {
	Data  *domain.HeroSlide `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type HeroController struct {
	Logger  *slog.Logger
	Service domain.HeroSlideService
}

func NewHeroController(logger *slog.Logger, svc domain.HeroSlideService) *HeroController {
	return &HeroController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSlides godoc
// @Summary List hero slides
// @Description Returns slides ordered by display position. With active=true only slides shown on the public carousel are returned.
// @Tags hero
// @Produce json
// @Param active query bool false "Only active slides"
// @Success 200 {object} helpers.APIResponse "data contains the slides"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero [get]
func (c *HeroController) ListSlides(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	slides, err := c.Service.ListSlides(r.Context(), activeOnly)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to fetch slides")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slides)
}

// GetSlideByID godoc
// @Summary Get a hero slide by ID
// @Tags hero
// @Produce json
// @Param slideID path string true "Slide ID"
// @Success 200 {object} controllers.HeroSlideSuccessResponse "data contains the slide"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero/{slideID} [get]
func (c *HeroController) GetSlideByID(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("slideID")
	if slideID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slideID")
		return
	}
	slide, err := c.Service.GetSlideByID(r.Context(), slideID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slide not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to fetch slide")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slide)
}

// CreateSlide godoc
// @Summary Create a hero slide
// @Description Creates a slide with a caller-supplied order. Link defaults to the journey page; active defaults to true.
// @Tags hero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slide body CreateHeroSlideRequest true "Slide data"
// @Success 201 {object} controllers.HeroSlideSuccessResponse "data contains the created slide"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero [post]
func (c *HeroController) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroSlideRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	slide := &domain.HeroSlide{
		Title:  req.Title,
		Image:  req.Image,
		Link:   req.Link,
		Order:  req.Order,
		Active: active,
	}
	if err := c.Service.CreateSlide(r.Context(), slide); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to create slide")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slide)
}

// UpdateSlide godoc
// @Summary Update a hero slide
// @Description Patch-style update; omitted fields are unchanged.
// @Tags hero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID"
// @Param body body UpdateHeroSlideRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.HeroSlideSuccessResponse "data contains the updated slide"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero/{slideID} [patch]
func (c *HeroController) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("slideID")
	if slideID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slideID")
		return
	}
	var req UpdateHeroSlideRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.UpdateHeroSlideData{
		Title:  req.Title,
		Image:  req.Image,
		Link:   req.Link,
		Order:  req.Order,
		Active: req.Active,
	}
	slide, err := c.Service.UpdateSlide(r.Context(), slideID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slide not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to update slide")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slide)
}

// ToggleSlideActive godoc
// @Summary Toggle a slide's visibility
// @Description Sets active on/off. Never touches the slide's order.
// @Tags hero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID"
// @Param body body ToggleActiveRequest true "Desired active state"
// @Success 200 {object} controllers.HeroSlideSuccessResponse "data contains the updated slide"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero/{slideID}/active [put]
func (c *HeroController) ToggleSlideActive(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("slideID")
	if slideID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slideID")
		return
	}
	var req ToggleActiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slide, err := c.Service.ToggleActive(r.Context(), slideID, *req.Active)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slide not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to toggle slide")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slide)
}

// ReorderSlides godoc
// @Summary Reorder hero slides
// @Description Assigns display positions 1..N following the given id sequence. On failure the caller should refetch the authoritative list instead of trusting its optimistic local order.
// @Tags hero
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReorderRequest true "Complete slide id list in desired order"
// @Success 200 {object} helpers.APIResponse "data contains {reordered: true}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero/reorder [post]
func (c *HeroController) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Reorder(r.Context(), req.SlideIDs); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to reorder slides")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"reordered": true})
}

// DeleteSlide godoc
// @Summary Delete a hero slide
// @Description Hard delete. Remaining slides are re-compacted to a dense 1..N order.
// @Tags hero
// @Produce json
// @Security BearerAuth
// @Param slideID path string true "Slide ID"
// @Success 200 {object} helpers.APIResponse "data contains {deleted: true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hero/{slideID} [delete]
func (c *HeroController) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	slideID := r.PathValue("slideID")
	if slideID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slideID")
		return
	}
	if err := c.Service.DeleteSlide(r.Context(), slideID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "slide not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to delete slide")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
