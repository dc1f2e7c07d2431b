package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	//emailの重複はDBのuniqueIndexで弾く
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	Phone        string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address      string     `gorm:"type:varchar(500)" json:"address,omitempty"`
	Avatar       string     `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	JoinDate     time.Time  `gorm:"not null" json:"join_date"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
