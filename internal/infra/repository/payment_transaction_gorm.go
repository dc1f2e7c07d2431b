package repository

import (
	"context"
	"errors"
	"time"

	"tkbshop/internal/domain/model"
	repo "tkbshop/internal/repository"

	"gorm.io/gorm"
)

type PaymentTransactionGormRepository struct {
	db *gorm.DB
}

func NewPaymentTransactionGormRepository(db *gorm.DB) *PaymentTransactionGormRepository {
	return &PaymentTransactionGormRepository{db: db}
}

func (r *PaymentTransactionGormRepository) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *PaymentTransactionGormRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var t model.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PaymentTransactionGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.PaymentTransaction, error) {
	var items []model.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.PaymentTransaction{}, err
	}
	return items, nil
}

// webhook/status照会が報告してきた最新状態で上書き
func (r *PaymentTransactionGormRepository) UpdateStatus(ctx context.Context, sessionID string, paymentStatus model.PaymentStatus, status model.SessionStatus, paymentID string) error {
	updates := map[string]interface{}{
		"payment_status": paymentStatus,
		"updated_at":     time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}

	res := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("session_id = ?", sessionID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// order_codeが空のときだけ書き込む。条件つきUPDATE1回なので
// 同じwebhookが同時に2回来ても勝つのは1回だけ。
func (r *PaymentTransactionGormRepository) LinkOrderIfAbsent(ctx context.Context, sessionID string, orderCode string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("session_id = ? AND (order_code IS NULL OR order_code = '')", sessionID).
		Updates(map[string]interface{}{
			"order_code": orderCode,
			"status":     model.SessionStatusComplete,
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
