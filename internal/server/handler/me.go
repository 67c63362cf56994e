package handler

import (
	"errors"
	"net/http"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/service/user"
	"github.com/garrettladley/synthonia/internal/xhttp"
)

type Me struct {
	users user.Service
}

func NewMe(users user.Service) *Me {
	return &Me{users: users}
}

type meResponse struct {
	ID       string     `json:"id"`
	Role     string     `json:"role"`
	FullName string     `json:"full_name"`
	Menu     []menuItem `json:"menu"`
}

// HandleGet handles GET /api/me.
func (h *Me) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := requireUser(ctx)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	p, err := h.users.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			apperr.WriteError(ctx, w, apperr.NotFound("not_found", "profile not found"))
			return
		}
		apperr.WriteError(ctx, w, err)
		return
	}
	menu, err := h.users.Menu(ctx, userID)
	if err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	xhttp.WriteOK(w, meResponse{
		ID:       p.ID,
		Role:     string(p.Role),
		FullName: p.FullName,
		Menu:     toMenu(menu),
	})
}
