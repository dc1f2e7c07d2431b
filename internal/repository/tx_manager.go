package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	PaymentTransactions() PaymentTransactionRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// webhookの「リンク書き込み→注文作成」を1トランザクションにするために使う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
