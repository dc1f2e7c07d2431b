package usecase_test

import (
	"context"

	"tkbshop/internal/domain/model"
	"tkbshop/internal/gateway"
	"tkbshop/internal/repository"
	"tkbshop/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, q repository.UserListQuery) ([]model.User, error) {
	args := m.Called(ctx, q)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repository.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: OrderRepository
// =====================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) ListAdmin(ctx context.Context, f repository.AdminOrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotals(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// =====================
// Mock: PaymentTransactionRepository
// =====================

type MockPaymentTransactionRepository struct {
	mock.Mock
}

func (m *MockPaymentTransactionRepository) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentTransactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	tx, _ := args.Get(0).(*model.PaymentTransaction)
	return tx, args.Error(1)
}

func (m *MockPaymentTransactionRepository) ListByUserID(ctx context.Context, userID string) ([]model.PaymentTransaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]model.PaymentTransaction)
	return txs, args.Error(1)
}

func (m *MockPaymentTransactionRepository) UpdateStatus(ctx context.Context, sessionID string, paymentStatus model.PaymentStatus, status model.SessionStatus, paymentID string) error {
	args := m.Called(ctx, sessionID, paymentStatus, status, paymentID)
	return args.Error(0)
}

func (m *MockPaymentTransactionRepository) LinkOrderIfAbsent(ctx context.Context, sessionID string, orderCode string) (bool, error) {
	args := m.Called(ctx, sessionID, orderCode)
	return args.Bool(0), args.Error(1)
}

// =====================
// Mock: PaymentGateway
// =====================

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateSession(ctx context.Context, in gateway.CreateSessionInput) (gateway.CheckoutSession, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(gateway.CheckoutSession)
	return s, args.Error(1)
}

func (m *MockPaymentGateway) GetStatus(ctx context.Context, sessionID string) (gateway.CheckoutStatus, error) {
	args := m.Called(ctx, sessionID)
	st, _ := args.Get(0).(gateway.CheckoutStatus)
	return st, args.Error(1)
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (gateway.WebhookEvent, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(gateway.WebhookEvent)
	return ev, args.Error(1)
}

// =====================
// Mock: AuthValidator
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, req usecase.AuthRegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

// =====================
// Fake: TransactionManager
// =====================

// Txの境界はそのまま素通しして、中のrepoはモックを返す
type fakeTxManager struct {
	orders *MockOrderRepository
	txs    *MockPaymentTransactionRepository
}

func (f *fakeTxManager) Orders() repository.OrderRepository { return f.orders }

func (f *fakeTxManager) PaymentTransactions() repository.PaymentTransactionRepository {
	return f.txs
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(f)
}
