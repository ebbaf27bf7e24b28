package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"clubsite/internal/delivery/http/helpers"
	"clubsite/internal/domain"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Username == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the data payload for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthController gates the admin area behind the single configured
// credential. This is a gate for the admin UI, not a user-account system.
type AuthController struct {
	Logger            *slog.Logger
	Issuer            domain.TokenIssuer
	Passwords         domain.PasswordVerifier
	AdminUsername     string
	AdminPasswordHash string
	TokenExpiry       time.Duration
}

func NewAuthController(logger *slog.Logger, issuer domain.TokenIssuer, passwords domain.PasswordVerifier, adminUsername, adminPasswordHash string, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		Logger:            logger,
		Issuer:            issuer,
		Passwords:         passwords,
		AdminUsername:     adminUsername,
		AdminPasswordHash: adminPasswordHash,
		TokenExpiry:       tokenExpiry,
	}
}

// Login godoc
// @Summary Admin login
// @Description Checks the configured admin credential and returns a bearer token for the admin endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} helpers.APIResponse "data contains token and expires_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if c.AdminPasswordHash == "" {
		c.Logger.ErrorContext(r.Context(), "login rejected: ADMIN_PASSWORD_HASH is not configured")
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	if req.Username != c.AdminUsername || c.Passwords.Compare(c.AdminPasswordHash, req.Password) != nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	token, err := c.Issuer.Issue(req.Username, c.TokenExpiry)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to issue token")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(c.TokenExpiry),
	})
}
