package model

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	//ゲートウェイ経由で支払い済みの初期ステータス
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	//ゲスト決済の注文はnull
	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	//人が読める注文番号（CMD + 8桁）
	Code     string            `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_id"`
	Status   OrderStatus       `gorm:"type:varchar(20);not null;index" json:"status"`
	Subtotal float64           `gorm:"not null" json:"subtotal"`
	Shipping float64           `gorm:"not null" json:"shipping"`
	Total    float64           `gorm:"not null" json:"total"`
	Items    []OrderItem       `gorm:"foreignKey:OrderID" json:"items"`
	Address  map[string]string `gorm:"serializer:json;type:text;column:shipping_address" json:"shipping_address"`
	//支払い経由ならStripeのセッションID
	PaymentSessionID string    `gorm:"type:varchar(255);index" json:"payment_session_id,omitempty"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
