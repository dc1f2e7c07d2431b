package server

import (
	"net/http"

	"tkbshop/internal/config"
	"tkbshop/internal/handler"
	"tkbshop/internal/repository"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なhandler一式。mainで組み立てて渡す。
type Deps struct {
	UserRepo repository.UserRepository

	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	AdminUser    *handler.AdminUserHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
}

// 全APIは /api 配下にまとめる。
func RegisterRoutes(e *echo.Echo, cfg config.Config, deps Deps) {
	api := e.Group("/api")

	api.GET("", root)
	api.GET("/health", health)

	deps.Auth.RegisterRoutes(api, cfg, deps.UserRepo)
	deps.Product.RegisterRoutes(api)
	deps.Order.RegisterRoutes(api, cfg, deps.UserRepo)
	deps.Payment.RegisterRoutes(api, cfg, deps.UserRepo)
	deps.AdminUser.RegisterRoutes(api, cfg, deps.UserRepo)
	deps.AdminOrder.RegisterRoutes(api, cfg, deps.UserRepo)
	deps.AdminProduct.RegisterRoutes(api, cfg, deps.UserRepo)
}

func root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "TKB'Shop API"})
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
