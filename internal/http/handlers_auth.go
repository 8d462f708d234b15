package httpx

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/service"
)

// LoginFlow is the surface of the login service the handlers need.
type LoginFlow interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	SelectRole(ctx context.Context, in service.SelectRoleInput) (*service.SelectRoleResult, error)
}

// AuthHandlers serves the login and role-selection endpoints.
type AuthHandlers struct {
	flow LoginFlow
}

// NewAuthHandlers constructs handlers over the given login flow.
func NewAuthHandlers(flow LoginFlow) *AuthHandlers {
	return &AuthHandlers{flow: flow}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	MultipleRoles   bool                `json:"multipleRoles"`
	SelectedRole    *identity.Redacted  `json:"selectedRole,omitempty"`
	AccessToken     string              `json:"accessToken,omitempty"`
	RefreshToken    string              `json:"refreshToken,omitempty"`
	ExpiresIn       int64               `json:"expiresIn,omitempty"`
	RedirectURL     string              `json:"redirectUrl,omitempty"`
	AvailableRoles  []identity.Redacted `json:"availableRoles,omitempty"`
	SelectionTicket string              `json:"selectionTicket,omitempty"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.flow.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Origin:   originFromRequest(r),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if res.MultipleRoles {
		WriteJSON(w, http.StatusOK, loginResponse{
			MultipleRoles:   true,
			AvailableRoles:  res.AvailableRoles,
			SelectionTicket: res.SelectionTicket,
		})
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		SelectedRole: res.SelectedRole,
		AccessToken:  res.Session.AccessToken,
		RefreshToken: res.Session.RefreshToken,
		ExpiresIn:    res.Session.ExpiresIn,
		RedirectURL:  res.Session.RedirectURL,
	})
}

type selectRoleRequest struct {
	Role            string `json:"role"`
	EntityID        string `json:"entityId"`
	SelectionTicket string `json:"selectionTicket"`
}

type selectRoleResponse struct {
	SelectedRole identity.Redacted `json:"selectedRole"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	ExpiresIn    int64             `json:"expiresIn"`
	RedirectURL  string            `json:"redirectUrl"`
}

// SelectRole handles POST /auth/select-role.
func (h *AuthHandlers) SelectRole(w http.ResponseWriter, r *http.Request) {
	var req selectRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	kind := identity.Kind(req.Role)
	switch {
	case !kind.Valid():
		WriteAppError(w, apperrors.ValidationField("role", "unknown account kind"))
		return
	case req.EntityID == "":
		WriteAppError(w, apperrors.ValidationField("entityId", "must not be empty"))
		return
	case req.SelectionTicket == "":
		WriteAppError(w, apperrors.ValidationField("selectionTicket", "must not be empty"))
		return
	}

	res, err := h.flow.SelectRole(r.Context(), service.SelectRoleInput{
		Role:            kind,
		EntityID:        req.EntityID,
		SelectionTicket: req.SelectionTicket,
		Origin:          originFromRequest(r),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, selectRoleResponse{
		SelectedRole: res.SelectedRole,
		AccessToken:  res.Session.AccessToken,
		RefreshToken: res.Session.RefreshToken,
		ExpiresIn:    res.Session.ExpiresIn,
		RedirectURL:  res.Session.RedirectURL,
	})
}

// originFromRequest extracts caller network context for audit entries.
// X-Forwarded-For wins over the socket address; only the first (client)
// hop is kept.
func originFromRequest(r *http.Request) service.RequestOrigin {
	return service.RequestOrigin{
		RemoteAddr: clientIP(r),
		UserAgent:  r.UserAgent(),
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
