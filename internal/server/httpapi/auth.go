package httpapi

import (
	"net/http"
	"time"

	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/models"
)

type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AvatarKey   string `json:"avatar_key,omitempty"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	out := profileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		AvatarKey: p.AvatarKey,
	}
	if p.LastLoginAt != nil {
		out.LastLoginAt = p.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return out
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.SecureCookies,
		MaxAge:   int(s.config.AccessTokenValidityDuration.Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.SecureCookies,
		MaxAge:   -1,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleManager
	}

	profile, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toProfileResponse(profile)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.setSessionCookie(w, pair.AccessToken)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          toProfileResponse(profile),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		// all refresh failures look the same to the client
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	s.setSessionCookie(w, pair.AccessToken)
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = decodeJSON(r, &req)

	if err := s.users.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": toProfileResponse(profile)})
}

func (s *Server) handleEnsureProfile(w http.ResponseWriter, r *http.Request) {
	userID, email := identity(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	_ = decodeJSON(r, &req)

	profile, err := s.profiles.EnsureProfile(r.Context(), userID, email, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": toProfileResponse(profile)})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.users.DeleteAccount(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
