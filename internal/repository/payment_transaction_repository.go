package repository

import (
	"context"

	"tkbshop/internal/domain/model"
)

// チェックアウトのローカル記録の保存・更新を約束。
type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *model.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)
	ListByUserID(ctx context.Context, userID string) ([]model.PaymentTransaction, error)

	//webhookが報告してきた最新状態を上書きする
	UpdateStatus(ctx context.Context, sessionID string, paymentStatus model.PaymentStatus, status model.SessionStatus, paymentID string) error

	//order_codeが空のときだけ書き込む（1回のUPDATEで判定まで行う）。
	//書けたらtrue。すでに埋まっていたらfalse。
	LinkOrderIfAbsent(ctx context.Context, sessionID string, orderCode string) (bool, error)
}
