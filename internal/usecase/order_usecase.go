package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tkbshop/internal/domain/model"
	repo "tkbshop/internal/repository"

	"github.com/google/uuid"
)

// 送料無料になる下限と通常送料。固定の業務定数（設定にしない）。
const (
	freeShippingThreshold = 50.0
	standardShippingFee   = 4.99
)

// 送料計算
func computeShipping(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return standardShippingFee
}

// 人が読める注文番号（CMD + uuid先頭8桁の大文字）
func generateOrderCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CMD" + strings.ToUpper(raw[:8])
}

type OrderUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
}

func NewOrderUsecase(orderRepo repo.OrderRepository, productRepo repo.ProductRepository) *OrderUsecase {
	return &OrderUsecase{orderRepo: orderRepo, productRepo: productRepo}
}

type OrderItemInput struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color"`
	SelectedSize  string  `json:"selected_size"`
	Image         string  `json:"image"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput  `json:"items"`
	ShippingAddress map[string]string `json:"shipping_address"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "items required")
	}

	//商品を検証してスナップショットを作る
	items := make([]model.OrderItem, 0, len(in.Items))
	var subtotal float64

	for _, it := range in.Items {
		if _, err := uuid.Parse(it.ProductID); err != nil {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %s", it.ProductID))
		}
		if it.Quantity <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}

		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewHTTPError(http.StatusNotFound, fmt.Sprintf("Product not found: %s", it.ProductID))
		}
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.InStock {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Product out of stock: %s", p.Name))
		}

		//注文時点の値をコピーして保存する
		items = append(items, model.OrderItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
			Image:         it.Image,
		})
		subtotal += it.Price * float64(it.Quantity)
	}

	shipping := computeShipping(subtotal)

	now := time.Now()
	order := model.Order{
		ID:        uuid.NewString(),
		UserID:    &userID,
		Code:      generateOrderCode(),
		Status:    model.OrderStatusProcessing,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
		Items:     items,
		Address:   in.ShippingAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.orderRepo.Create(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return order, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の注文は「存在しない扱い」にする
	if o.UserID == nil || *o.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	return o, nil
}

// 顧客によるキャンセル。processingのときだけ通す。
func (u *OrderUsecase) CancelMyOrder(ctx context.Context, userID string, orderID string) error {
	o, err := u.GetMyOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if o.Status != model.OrderStatusProcessing {
		return NewHTTPError(http.StatusBadRequest, "Order cannot be cancelled")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
