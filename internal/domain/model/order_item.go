package model

import "time"

// 注文時点の商品情報のコピー。
// 後から商品が編集されても過去の注文は変わらない。
type OrderItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string    `gorm:"type:uuid;not null;index" json:"-"`
	ProductID     string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	SelectedColor string    `gorm:"type:varchar(100)" json:"selected_color"`
	SelectedSize  string    `gorm:"type:varchar(100)" json:"selected_size"`
	Image         string    `gorm:"type:varchar(500)" json:"image"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
