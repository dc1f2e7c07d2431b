package handler

import (
	"net/http"

	"tkbshop/internal/config"
	"tkbshop/internal/middleware"
	"tkbshop/internal/repository"
	"tkbshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /auth のHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /auth/register, /auth/login, /auth/profile を登録
func (h *AuthHandler) RegisterRoutes(g *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)

	me := g.Group("/auth/profile")
	me.Use(middleware.AuthJWT(cfg))
	me.Use(middleware.IdentityGuard(userRepo))
	me.GET("", h.profile)
	me.PUT("", h.updateProfile)
}

// POST /auth/register のハンドラ
func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /auth/login のハンドラ
func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Profile(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// auth系はsentinel errorをstatusに読み替える
func writeAuthError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrValidation:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid email or password format"})
	case usecase.ErrConflict:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already registered"})
	case usecase.ErrUnauthorized:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	case usecase.ErrForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account is deactivated"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
