package handler

import (
	"io"
	"net/http"

	"tkbshop/internal/config"
	"tkbshop/internal/domain/model"
	"tkbshop/internal/middleware"
	"tkbshop/internal/repository"
	"tkbshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /payments と /webhook/stripe のHTTP
type PaymentHandler struct {
	uc       *usecase.CheckoutUsecase
	userRepo repository.UserRepository
}

// DI
func NewPaymentHandler(uc *usecase.CheckoutUsecase, userRepo repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{uc: uc, userRepo: userRepo}
}

// チェックアウトはゲストも叩けるのでOptionalAuthJWT。
// webhookはStripeが呼ぶので認証なし（署名で検証する）。
func (h *PaymentHandler) RegisterRoutes(g *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	p := g.Group("/payments")
	p.POST("/checkout/session", h.createSession, middleware.OptionalAuthJWT(cfg))
	p.GET("/checkout/status/:session_id", h.status)

	tx := p.Group("/transactions")
	tx.Use(middleware.AuthJWT(cfg))
	tx.Use(middleware.IdentityGuard(userRepo))
	tx.GET("", h.listTransactions)

	g.POST("/webhook/stripe", h.webhook)
}

func (h *PaymentHandler) createSession(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//ログイン済みならuserを引き直す。失敗してもゲスト扱いで続行。
	var user *model.User
	if userID, ok := getUserIDFromContext(c); ok {
		if u, err := h.userRepo.FindByID(c.Request().Context(), userID); err == nil {
			user = u
		}
	}

	origin := c.Request().Header.Get("Origin")

	out, err := h.uc.CreateSession(c.Request().Context(), user, origin, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) status(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session_id required"})
	}

	out, err := h.uc.GetStatus(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /webhook/stripe のハンドラ。
// bodyは署名検証に使うので生のまま読む。
func (h *PaymentHandler) webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	if err := h.uc.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (h *PaymentHandler) listTransactions(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyTransactions(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
