package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/service/auth"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xcontext"
	"github.com/garrettladley/synthonia/internal/xhttp"
	"github.com/garrettladley/synthonia/internal/xslog"
)

const (
	authResultOK      = "ok"
	authResultFailed  = "failed"
	authResultTaken   = "email_taken"
	authResultInvalid = "invalid"
)

type Auth struct {
	service auth.Service
	metrics *metrics.Manager
}

func NewAuth(service auth.Service, m *metrics.Manager) *Auth {
	return &Auth{service: service, metrics: m}
}

func checkEmail(c validator.Collector, email string) {
	_, err := mail.ParseAddress(email)
	c.Check(err == nil, "email", "must be a valid email address")
}

func checkPassword(c validator.Collector, field, password string) {
	c.Check(len(password) >= auth.MinPasswordLength, field, "must be at least 8 characters")
	c.Check(len(password) <= auth.MaxPasswordLength, field, "must be at most 72 bytes")
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (req *signUpRequest) Validate() map[string]string {
	c := validator.Collector{}
	checkEmail(c, req.Email)
	checkPassword(c, "password", req.Password)
	c.Check(req.Role == "" || analytics.Role(req.Role).Valid(), "role", "must be one of subject, doctor, coach")
	return c.Result()
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *signInRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(req.Email != "", "email", "is required")
	c.Check(req.Password != "", "password", "is required")
	return c.Result()
}

type sessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toSession(s *auth.Session) sessionResponse {
	return sessionResponse{Token: s.Token, UserID: s.UserID, ExpiresAt: s.ExpiresAt}
}

// HandleSignUp handles POST /auth/signup.
func (h *Auth) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signUpRequest
	if err := decode(w, r, &req); err != nil {
		h.metrics.ObserveAuth(authResultInvalid)
		apperr.WriteError(ctx, w, err)
		return
	}

	s, err := h.service.SignUp(ctx, auth.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     analytics.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			h.metrics.ObserveAuth(authResultTaken)
			apperr.WriteError(ctx, w, apperr.Conflict("email_taken", "email already registered"))
			return
		}
		apperr.WriteError(ctx, w, apperr.Internal("internal_error", "sign up failed", err))
		return
	}

	h.metrics.ObserveAuth(authResultOK)
	xslog.FromContext(ctx).InfoContext(ctx, "user signed up", xslog.UserID(s.UserID))
	xhttp.WriteCreated(w, toSession(s))
}

// HandleSignIn handles POST /auth/signin. Unknown emails and wrong
// passwords share one response.
func (h *Auth) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signInRequest
	if err := decode(w, r, &req); err != nil {
		h.metrics.ObserveAuth(authResultInvalid)
		apperr.WriteError(ctx, w, err)
		return
	}

	s, err := h.service.SignIn(ctx, auth.SignInRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.ObserveAuth(authResultFailed)
			apperr.WriteError(ctx, w, apperr.Unauthorized("invalid_credentials", "invalid email or password"))
			return
		}
		apperr.WriteError(ctx, w, apperr.Internal("internal_error", "sign in failed", err))
		return
	}

	h.metrics.ObserveAuth(authResultOK)
	xhttp.WriteOK(w, toSession(s))
}

// HandleSignOut handles POST /auth/signout. It runs behind SessionAuth.
func (h *Auth) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := xcontext.GetSessionToken(ctx)
	if !ok {
		apperr.WriteError(ctx, w, apperr.Unauthorized("unauthorized", "missing session"))
		return
	}

	if err := h.service.SignOut(ctx, token); err != nil {
		apperr.WriteError(ctx, w, apperr.Internal("internal_error", "sign out failed", err))
		return
	}

	xhttp.WriteNoContent(w)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

func (req *passwordResetRequest) Validate() map[string]string {
	c := validator.Collector{}
	checkEmail(c, req.Email)
	return c.Result()
}

// HandlePasswordReset handles POST /auth/password/reset. It always answers
// 202 so callers cannot probe for accounts.
func (h *Auth) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req passwordResetRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	if err := h.service.RequestPasswordReset(ctx, req.Email); err != nil {
		apperr.WriteError(ctx, w, apperr.Internal("internal_error", "password reset failed", err))
		return
	}

	xhttp.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}

type passwordConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (req *passwordConfirmRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(req.Token != "", "token", "is required")
	checkPassword(c, "password", req.Password)
	return c.Result()
}

// HandlePasswordConfirm handles POST /auth/password/confirm.
func (h *Auth) HandlePasswordConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req passwordConfirmRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	if err := h.service.ConfirmPasswordReset(ctx, req.Token, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidResetToken) {
			apperr.WriteError(ctx, w, apperr.BadRequest("invalid_reset_token", "invalid or expired reset token"))
			return
		}
		apperr.WriteError(ctx, w, apperr.Internal("internal_error", "password reset failed", err))
		return
	}

	xhttp.WriteNoContent(w)
}
