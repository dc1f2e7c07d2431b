package gateway

import (
	"context"
	"errors"
)

// APIキー未設定のときはセッションを作れない（503で返す）
var ErrNotConfigured = errors.New("payment gateway not configured")

// webhookの署名が検証できない
var ErrBadSignature = errors.New("invalid webhook signature")

// ホスト型チェックアウトのセッション作成結果。
type CheckoutSession struct {
	SessionID string
	URL       string
}

type CreateSessionInput struct {
	//合計金額（ユーロ）
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	//transactionに写すための付帯情報
	Metadata map[string]string
}

// ゲートウェイに照会したセッションの現在状態。
type CheckoutStatus struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

// 署名検証済みのwebhook通知の中身。
type WebhookEvent struct {
	EventID       string
	SessionID     string
	PaymentStatus string
	SessionStatus string
}

// 決済ゲートウェイとの窓口の約束。
// 実体はStripe（internal/gateway/stripe.go）。テストではモックを注入する。
type PaymentGateway interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (CheckoutSession, error)
	GetStatus(ctx context.Context, sessionID string) (CheckoutStatus, error)
	//署名検証込みでwebhookのbodyを解釈する
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}
