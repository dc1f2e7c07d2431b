package handler

import (
	"net/http"
	"strconv"

	"tkbshop/internal/config"
	"tkbshop/internal/middleware"
	"tkbshop/internal/repository"
	"tkbshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// /admin/users と /admin/stats のHTTP
type AdminUserHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// adminを登録
func (h *AdminUserHandler) RegisterRoutes(g *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	admin := g.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.IdentityGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/users", h.listUsers)
	admin.POST("/users", h.createUser)
	admin.PUT("/users/:id", h.updateUser)
	admin.DELETE("/users/:id", h.deleteUser)
	admin.GET("/stats", h.stats)
}

func (h *AdminUserHandler) listUsers(c echo.Context) error {
	skip := 0
	if v := c.QueryParam("skip"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid skip"})
		}
		skip = s
	}

	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.ListUsers(c.Request().Context(), usecase.AdminListUsersInput{
		Search: c.QueryParam("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) createUser(c echo.Context) error {
	var req usecase.AdminCreateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) updateUser(c echo.Context) error {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.AdminUpdateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateUser(c.Request().Context(), idStr, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) deleteUser(c echo.Context) error {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteUser(c.Request().Context(), idStr); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

func (h *AdminUserHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
