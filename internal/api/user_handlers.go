package api

import (
	"encoding/json"
	"net/http"

	"github.com/Joshua-Anderson1/scoutradioz/internal/auth"
	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/db/repositories"
	"github.com/Joshua-Anderson1/scoutradioz/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// UserHandlers implement org selection, sign-in and sign-out.
type UserHandlers struct {
	sessionSvc *common.SessionService
	orgRepo    *repositories.OrgRepository
	userRepo   *repositories.UserRepository
}

// NewUserHandlers creates the user handlers
func NewUserHandlers(sessionSvc *common.SessionService, orgRepo *repositories.OrgRepository, userRepo *repositories.UserRepository) *UserHandlers {
	return &UserHandlers{
		sessionSvc: sessionSvc,
		orgRepo:    orgRepo,
		userRepo:   userRepo,
	}
}

// ListOrgs serves the org-selection entry point.
func (h *UserHandlers) ListOrgs(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgRepo.ListVisible(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list orgs")
		return
	}
	respondWithSuccess(w, http.StatusOK, &orgs)
}

// ListUsers serves the user-selection page for an org: the accounts a
// device can sign in as after picking that org.
func (h *UserHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	orgKey := chi.URLParam(r, "orgKey")
	if orgKey == "" {
		respondWithError(w, http.StatusBadRequest, "org key is required")
		return
	}

	users, err := h.userRepo.ListVisibleByOrg(r.Context(), orgKey)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respondWithSuccess(w, http.StatusOK, &users)
}

// Login selects an org (and optionally a user account) and creates a
// session. With no user id the device assumes the org's shared default
// identity at viewer level.
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrgKey == "" {
		respondWithError(w, http.StatusBadRequest, "org_key is required")
		return
	}

	org, err := h.orgRepo.GetByKey(r.Context(), req.OrgKey)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "org lookup failed")
		return
	}
	if org == nil {
		respondWithError(w, http.StatusNotFound, "org not found")
		return
	}

	username := auth.DefaultUserName
	userID := ""
	level := constants.AccessViewer
	if req.UserID != "" {
		user, err := h.userRepo.GetByID(r.Context(), req.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "user lookup failed")
			return
		}
		if user == nil || user.OrgKey != req.OrgKey {
			respondWithError(w, http.StatusNotFound, "user not found in org")
			return
		}
		username = user.Name
		userID = user.ID
		level = user.AccessLevel
	}

	sessionID, err := h.sessionSvc.CreateSession(r.Context(), userID, username, req.OrgKey, level)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	resp := dtos.LoginResponse{
		SessionID:   sessionID,
		Username:    username,
		OrgKey:      req.OrgKey,
		AccessLevel: int(level),
		Redirect:    r.URL.Query().Get("rdr"),
	}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// Logout clears the session.
func (h *UserHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(common.SessionCookieName); err == nil {
		_ = h.sessionSvc.DeleteSession(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, constants.LoginPath, http.StatusSeeOther)
}
