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

// /admin/orders のHTTP
type AdminOrderHandler struct {
	uc *usecase.AdminUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// adminを登録
func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	admin := g.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.IdentityGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.listOrders)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.DELETE("/orders/:id", h.deleteOrder)
}

func (h *AdminOrderHandler) listOrders(c echo.Context) error {
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

	out, err := h.uc.ListOrders(c.Request().Context(), skip, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateOrderStatus(c.Request().Context(), idStr, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order status updated"})
}

func (h *AdminOrderHandler) deleteOrder(c echo.Context) error {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), idStr); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order deleted"})
}
