package model

import "time"

type Product struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Category string `gorm:"type:varchar(100);not null;index" json:"category"`
	//価格はユーロ
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Image         string   `gorm:"type:varchar(500)" json:"image"`
	Description   string   `gorm:"type:text" json:"description"`
	//色・サイズの選択肢はJSONで保存
	Colors    []string  `gorm:"serializer:json;type:text" json:"colors"`
	Sizes     []string  `gorm:"serializer:json;type:text" json:"sizes"`
	InStock   bool      `gorm:"not null;default:true" json:"in_stock"`
	Rating    float64   `gorm:"not null;default:4.0" json:"rating"`
	Reviews   int       `gorm:"not null;default:0" json:"reviews"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
