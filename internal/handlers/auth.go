package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"typedrill/internal/config"
	"typedrill/internal/logger"
	"typedrill/internal/models"
	"typedrill/internal/reqctx"
	"typedrill/internal/services"
	"typedrill/internal/utils/helpers"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Registration data"
// @Success 201 {string} string "User registered"
// @Failure 400 {string} string "Validation error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("register: bad JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	user := &models.User{Username: req.Username, Email: req.Email}
	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		logger.WithCtx(r.Context()).Warn("register failed", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, "User registered successfully.")
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Invalid username or password"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("login: bad JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	accessTTL, refreshTTL := h.tokenTTLs()
	access, refresh, user, err := h.authService.LoginUser(
		r.Context(), req.Username, req.Password, h.cfg.JWTSecret, accessTTL, refreshTTL,
	)
	if err != nil {
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		Role:         user.Role,
	})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Current refresh token"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Invalid refresh token"
// @Router /refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidRefresh.Error())
		return
	}
	userID, ok1 := claims["user_id"].(float64)
	tokenType, ok2 := claims["token_type"].(string)
	if !ok1 || !ok2 || tokenType != "refresh" {
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidRefresh.Error())
		return
	}

	accessTTL, refreshTTL := h.tokenTTLs()
	access, refresh, err := h.authService.RefreshTokens(
		r.Context(), int(userID), req.RefreshToken, h.cfg.JWTSecret, accessTTL, refreshTTL,
	)
	if err != nil {
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidRefresh.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{AccessToken: access, RefreshToken: refresh})
}

// Logout godoc
// @Summary Log out and revoke the refresh token
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Refresh token to revoke"
// @Success 200 {string} string "Logged out"
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid data format.")
		return
	}

	if err := h.authService.Logout(r.Context(), userID, req.RefreshToken); err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	helpers.JSON(w, http.StatusOK, "Logged out.")
}

// Profile godoc
// @Summary Current user's profile
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "User not found.")
		return
	}

	helpers.JSON(w, http.StatusOK, models.UserProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

func (h *AuthHandler) tokenTTLs() (time.Duration, time.Duration) {
	accessTTL, err := time.ParseDuration(h.cfg.AccessTokenTTL)
	if err != nil {
		accessTTL = 15 * time.Minute
	}
	refreshTTL, err := time.ParseDuration(h.cfg.RefreshTokenTTL)
	if err != nil {
		refreshTTL = 7 * 24 * time.Hour
	}
	return accessTTL, refreshTTL
}
