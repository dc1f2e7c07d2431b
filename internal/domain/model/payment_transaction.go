package model

import "time"

// Stripeが報告する支払い状態。
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// チェックアウトセッション自体の状態。
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusExpired  SessionStatus = "expired"
	SessionStatusComplete SessionStatus = "complete"
)

// カートの明細スナップショット。セッション作成時点の値をそのまま持つ。
type CartItemSnapshot struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
	Image         string  `json:"image"`
}

// チェックアウト1回分のローカル記録。
// webhookはsession_idで照合するので、session_idは必ず一意。
type PaymentTransaction struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	//StripeのチェックアウトセッションID（webhook照合キー）
	SessionID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"session_id"`
	//Stripeの支払い/イベントID
	PaymentID string  `gorm:"type:varchar(255)" json:"payment_id,omitempty"`
	UserID    *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Email     string  `gorm:"type:varchar(255)" json:"email,omitempty"`
	//注文が作成されたら注文番号を書き込む（再作成防止のマーカー）
	OrderCode     string        `gorm:"type:varchar(20);column:order_code" json:"order_id,omitempty"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"type:varchar(10);not null" json:"currency"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	Status        SessionStatus `gorm:"type:varchar(20);not null" json:"status"`
	//webhookが注文を組み立てるためのスナップショット
	Items    []CartItemSnapshot `gorm:"serializer:json;type:text" json:"items"`
	Address  map[string]string  `gorm:"serializer:json;type:text;column:shipping_address" json:"shipping_address"`
	Subtotal float64            `gorm:"not null" json:"subtotal"`
	Shipping float64            `gorm:"not null" json:"shipping"`
	CreatedAt time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
