package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tkbshop/internal/config"
	"tkbshop/internal/domain/model"
	"tkbshop/internal/gateway"
	repo "tkbshop/internal/repository"

	"github.com/google/uuid"
)

// チェックアウト〜webhook照合の流れを持つusecase。
//
//  1. CreateSession: 合計を計算してStripeにホスト型セッションを作らせ、
//     カートのスナップショットごとtransactionを保存する
//  2. 顧客はStripeのページで支払う
//  3. HandleWebhook: 通知でtransactionを更新し、最初のpaid通知で
//     スナップショットから注文を起こす
type CheckoutUsecase struct {
	cfg     config.Config
	gw      gateway.PaymentGateway
	txRepo  repo.PaymentTransactionRepository
	manager repo.TransactionManager
}

func NewCheckoutUsecase(
	cfg config.Config,
	gw gateway.PaymentGateway,
	txRepo repo.PaymentTransactionRepository,
	manager repo.TransactionManager,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cfg:     cfg,
		gw:      gw,
		txRepo:  txRepo,
		manager: manager,
	}
}

type CheckoutInput struct {
	Items           []OrderItemInput  `json:"items"`
	ShippingAddress map[string]string `json:"shipping_address"`
}

type CheckoutSessionOutput struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// セッション作成。userはゲストならnil。
// originはフロントのURL（リダイレクト先の組み立てに使う）。
func (u *CheckoutUsecase) CreateSession(ctx context.Context, user *model.User, origin string, in CheckoutInput) (*CheckoutSessionOutput, error) {
	if len(in.Items) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "items required")
	}

	var subtotal float64
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		subtotal += it.Price * float64(it.Quantity)
	}
	shipping := computeShipping(subtotal)
	total := subtotal + shipping

	frontend := origin
	if frontend == "" {
		frontend = u.cfg.FrontendURL
	}

	metadata := map[string]string{
		"items_count": strconv.Itoa(len(in.Items)),
		"subtotal":    strconv.FormatFloat(subtotal, 'f', 2, 64),
		"shipping":    strconv.FormatFloat(shipping, 'f', 2, 64),
	}
	var userID *string
	email := ""
	if user != nil {
		userID = &user.ID
		email = user.Email
		metadata["user_id"] = user.ID
		metadata["user_email"] = user.Email
	}

	session, err := u.gw.CreateSession(ctx, gateway.CreateSessionInput{
		Amount:   total,
		Currency: "eur",
		//{CHECKOUT_SESSION_ID}はStripeが埋める
		SuccessURL: frontend + "/checkout-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  frontend + "/checkout",
		Metadata:   metadata,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrNotConfigured) {
			return nil, NewHTTPError(http.StatusServiceUnavailable, "Stripe payment service not configured")
		}
		//ゲートウェイのエラーメッセージはそのまま返す
		return nil, NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Failed to create checkout session: %v", err))
	}

	//webhookが注文を組み立てられるようにスナップショットごと保存する
	items := make([]model.CartItemSnapshot, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.CartItemSnapshot{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
			Image:         it.Image,
		})
	}

	now := time.Now()
	tx := &model.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.SessionID,
		UserID:        userID,
		Email:         email,
		Amount:        total,
		Currency:      "eur",
		PaymentStatus: model.PaymentStatusInitiated,
		Status:        model.SessionStatusActive,
		Items:         items,
		Address:       in.ShippingAddress,
		Subtotal:      subtotal,
		Shipping:      shipping,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &CheckoutSessionOutput{
		URL:       session.URL,
		SessionID: session.SessionID,
		Message:   "Checkout session created successfully",
	}, nil
}

type CheckoutStatusOutput struct {
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// Stripeに現在状態を照会して、ローカルのtransactionにも写す。
func (u *CheckoutUsecase) GetStatus(ctx context.Context, sessionID string) (*CheckoutStatusOutput, error) {
	if sessionID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "session_id required")
	}

	st, err := u.gw.GetStatus(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotConfigured) {
			return nil, NewHTTPError(http.StatusServiceUnavailable, "Stripe payment service not configured")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Failed to get checkout status: %v", err))
	}

	//ローカル記録を追従させる。未知のセッションでも照会自体は返す。
	err = u.txRepo.UpdateStatus(ctx, sessionID,
		model.PaymentStatus(st.PaymentStatus),
		model.SessionStatus(st.Status),
		"",
	)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &CheckoutStatusOutput{
		Status:        st.Status,
		PaymentStatus: st.PaymentStatus,
		AmountTotal:   st.AmountTotal,
		Currency:      st.Currency,
		Metadata:      st.Metadata,
	}, nil
}

// HandleWebhookはStripeからの通知を処理する。
//
// paidへの遷移で、まだ注文が紐付いていなければスナップショットから
// 注文を起こす。紐付けは「order_codeが空のときだけ書く」条件つき
// UPDATEなので、同じ通知が二重に届いても注文は1件しかできない。
func (u *CheckoutUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		return NewHTTPError(http.StatusBadRequest, "Missing Stripe signature")
	}

	ev, err := u.gw.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, gateway.ErrBadSignature) {
			return NewHTTPError(http.StatusBadRequest, "Invalid Stripe signature")
		}
		return NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Webhook processing failed: %v", err))
	}

	//チェックアウト以外のイベントはACKだけ返す
	if ev.SessionID == "" {
		return nil
	}

	return u.manager.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.PaymentTransactions().UpdateStatus(ctx, ev.SessionID,
			model.PaymentStatus(ev.PaymentStatus),
			model.SessionStatus(ev.SessionStatus),
			ev.EventID,
		)
		if errors.Is(err, repo.ErrNotFound) {
			//こちらが知らないセッション。作り直しようがないのでACK。
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if model.PaymentStatus(ev.PaymentStatus) != model.PaymentStatusPaid {
			return nil
		}

		tx, err := r.PaymentTransactions().FindBySessionID(ctx, ev.SessionID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//紐付けに勝った方だけが注文を作る
		code := generateOrderCode()
		linked, err := r.PaymentTransactions().LinkOrderIfAbsent(ctx, ev.SessionID, code)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !linked {
			//すでに注文済み（再配送）
			return nil
		}

		order := orderFromTransaction(tx, code)
		if err := r.Orders().Create(ctx, &order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// スナップショットから注文を組み立てる
func orderFromTransaction(tx *model.PaymentTransaction, code string) model.Order {
	items := make([]model.OrderItem, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, model.OrderItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Price:         it.Price,
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
			Image:         it.Image,
		})
	}

	now := time.Now()
	return model.Order{
		ID:     uuid.NewString(),
		UserID: tx.UserID,
		Code:   code,
		//ゲートウェイ経由の注文はpaid始まり
		Status:           model.OrderStatusPaid,
		Subtotal:         tx.Subtotal,
		Shipping:         tx.Shipping,
		Total:            tx.Amount,
		Items:            items,
		Address:          tx.Address,
		PaymentSessionID: tx.SessionID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

type TransactionSummary struct {
	ID            string              `json:"id"`
	SessionID     string              `json:"session_id"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	OrderCode     string              `json:"order_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// 自分の決済履歴（新しい順）
func (u *CheckoutUsecase) ListMyTransactions(ctx context.Context, userID string) ([]TransactionSummary, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	txs, err := u.txRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]TransactionSummary, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionSummary{
			ID:            t.ID,
			SessionID:     t.SessionID,
			Amount:        t.Amount,
			Currency:      t.Currency,
			PaymentStatus: t.PaymentStatus,
			OrderCode:     t.OrderCode,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out, nil
}
