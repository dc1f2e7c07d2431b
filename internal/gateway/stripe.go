package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripeのホスト型チェックアウトを使うPaymentGateway実装。
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	configured    bool
}

// DI
// apiKeyが空でも起動はできる（呼び出し時にErrNotConfigured）。
func NewStripeGateway(apiKey string, webhookSecret string) *StripeGateway {
	g := &StripeGateway{webhookSecret: webhookSecret}
	if apiKey == "" {
		return g
	}

	api := &client.API{}
	api.Init(apiKey, nil)

	g.api = api
	g.configured = true
	return g
}

func (g *StripeGateway) CreateSession(ctx context.Context, in CreateSessionInput) (CheckoutSession, error) {
	if !g.configured {
		return CheckoutSession{}, ErrNotConfigured
	}

	//Stripeは最小通貨単位（セント）
	amount := int64(math.Round(in.Amount * 100))

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("TKB'Shop order"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		//Stripeのエラーメッセージをそのまま上に返す
		return CheckoutSession{}, fmt.Errorf("stripe checkout session: %w", err)
	}

	return CheckoutSession{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (g *StripeGateway) GetStatus(ctx context.Context, sessionID string) (CheckoutStatus, error) {
	if !g.configured {
		return CheckoutStatus{}, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return CheckoutStatus{}, fmt.Errorf("stripe checkout status: %w", err)
	}

	return CheckoutStatus{
		Status:        mapSessionStatus(s.Status),
		PaymentStatus: mapPaymentStatus(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}, nil
}

// 署名検証込みでwebhookのbodyを解釈する。
// 検証に失敗したらErrBadSignature。
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return WebhookEvent{}, ErrBadSignature
	}

	var s stripe.CheckoutSession
	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return WebhookEvent{}, fmt.Errorf("stripe webhook payload: %w", err)
		}
	default:
		//チェックアウト以外のイベントは無視（SessionID空で返す）
		return WebhookEvent{EventID: event.ID}, nil
	}

	out := WebhookEvent{
		EventID:       event.ID,
		SessionID:     s.ID,
		SessionStatus: mapSessionStatus(s.Status),
	}

	switch event.Type {
	case "checkout.session.completed":
		out.PaymentStatus = mapPaymentStatus(s.PaymentStatus)
	case "checkout.session.async_payment_succeeded":
		out.PaymentStatus = "paid"
	case "checkout.session.async_payment_failed":
		out.PaymentStatus = "failed"
	case "checkout.session.expired":
		out.PaymentStatus = "expired"
	}

	return out, nil
}

// Stripeの語彙をこちらの語彙に寄せる
func mapSessionStatus(s stripe.CheckoutSessionStatus) string {
	switch s {
	case stripe.CheckoutSessionStatusOpen:
		return "active"
	case stripe.CheckoutSessionStatusComplete:
		return "complete"
	case stripe.CheckoutSessionStatusExpired:
		return "expired"
	default:
		return "active"
	}
}

func mapPaymentStatus(s stripe.CheckoutSessionPaymentStatus) string {
	switch s {
	case stripe.CheckoutSessionPaymentStatusPaid,
		stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return "paid"
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return "pending"
	default:
		return "pending"
	}
}
