package repository

import (
	"context"

	"tkbshop/internal/domain/model"
)

type AdminOrderListFilter struct {
	Skip  int
	Limit int
}

type OrderRepository interface {
	//明細込みで1件取得
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error

	//管理者用の注文一覧（新しい順）
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error)
	//統計用
	Count(ctx context.Context) (int64, error)
	SumTotals(ctx context.Context) (float64, error)
}
