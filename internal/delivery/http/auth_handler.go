package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kavun/internal/entity"
	"kavun/internal/usecase"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUc usecase.AuthUsecase
}

func NewAuthHandler(authUc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUc: authUc,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "istek verisi çözümlenemedi")
		return
	}

	authResponse, err := h.authUc.Register(r.Context(), req)
	if err != nil {
		var invalid *usecase.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			writeError(w, http.StatusBadRequest, invalid.Reason)
		case errors.Is(err, usecase.ErrEmailAlreadyTaken):
			writeError(w, http.StatusConflict, "bu e-posta adresi zaten kayıtlı")
		default:
			logrus.WithError(err).Error("register failed")
			writeError(w, http.StatusInternalServerError, "sunucu hatası")
		}
		return
	}

	h.setRefreshTokenCookie(w, authResponse.RefreshToken)
	authResponse.RefreshToken = ""

	writeJSON(w, http.StatusCreated, authResponse)
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "istek verisi çözümlenemedi")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "e-posta ve şifre zorunludur")
		return
	}

	authResponse, err := h.authUc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "e-posta veya şifre hatalı")
			return
		}
		logrus.WithError(err).Error("login failed")
		writeError(w, http.StatusInternalServerError, "sunucu hatası")
		return
	}

	h.setRefreshTokenCookie(w, authResponse.RefreshToken)
	authResponse.RefreshToken = ""

	writeJSON(w, http.StatusOK, authResponse)
}

// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	cookie, err := r.Cookie("refresh_token")
	if err == nil {
		refreshToken = cookie.Value
	}

	if refreshToken == "" {
		var req entity.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token gerekli")
		return
	}

	authResponse, err := h.authUc.RefreshToken(r.Context(), refreshToken)
	if err != nil {
		h.clearRefreshTokenCookie(w)
		writeError(w, http.StatusUnauthorized, "geçersiz veya süresi dolmuş refresh token")
		return
	}

	h.setRefreshTokenCookie(w, authResponse.RefreshToken)
	authResponse.RefreshToken = ""

	writeJSON(w, http.StatusOK, authResponse)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	cookie, err := r.Cookie("refresh_token")
	if err == nil {
		refreshToken = cookie.Value
	}

	if refreshToken == "" {
		var req entity.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken != "" {
		if err := h.authUc.Logout(r.Context(), refreshToken); err != nil {
			logrus.WithError(err).Warn("logout failed")
		}
	}

	h.clearRefreshTokenCookie(w)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// POST /api/auth/logout-all
func (h *AuthHandler) LogoutAllDevices(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	if err := h.authUc.LogoutAllDevices(r.Context(), claims.UserId); err != nil {
		logrus.WithError(err).Error("logout all devices failed")
		writeError(w, http.StatusInternalServerError, "sunucu hatası")
		return
	}

	h.clearRefreshTokenCookie(w)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setRefreshTokenCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60,
	}
	http.SetCookie(w, cookie)
}

func (h *AuthHandler) clearRefreshTokenCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
	http.SetCookie(w, cookie)
}
