package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"tkbshop/internal/domain/model"
	"tkbshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminUC(userRepo *MockUserRepository, productRepo *MockProductRepository, orderRepo *MockOrderRepository) *usecase.AdminUsecase {
	return usecase.NewAdminUsecase(userRepo, productRepo, orderRepo)
}

// =====================
// DeleteUser
// =====================

func TestAdminUsecase_DeleteUser_AdminBlocked(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	userRepo.On("FindByID", mock.Anything, "u-admin").Return(&model.User{
		ID:   "u-admin",
		Role: model.RoleAdmin,
	}, nil)

	u := newAdminUC(userRepo, productRepo, orderRepo)

	err := u.DeleteUser(ctx, "u-admin")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	//管理者は消せない
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminUsecase_DeleteUser_Customer(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	userRepo.On("FindByID", mock.Anything, "u-1").Return(&model.User{
		ID:   "u-1",
		Role: model.RoleCustomer,
	}, nil)
	userRepo.On("Delete", mock.Anything, "u-1").Return(nil)

	u := newAdminUC(userRepo, productRepo, orderRepo)

	err := u.DeleteUser(ctx, "u-1")
	assert.NoError(t, err)

	userRepo.AssertExpectations(t)
}

// =====================
// CreateUser
// =====================

func TestAdminUsecase_CreateUser_NoTokenReturned(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@test.com" && u.Role == model.RoleCustomer && u.PasswordHash != "pw12345678"
	})).Return(nil)

	u := newAdminUC(userRepo, productRepo, orderRepo)

	out, err := u.CreateUser(ctx, usecase.AdminCreateUserInput{
		Email:    "new@test.com",
		Password: "pw12345678",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new@test.com", out.Email)

	userRepo.AssertExpectations(t)
}

// =====================
// UpdateOrderStatus
// =====================

func TestAdminUsecase_UpdateOrderStatus_AcceptsEnumeratedValues(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{"processing", "shipped", "delivered", "cancelled"} {
		userRepo := new(MockUserRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)

		orderRepo.On("UpdateStatus", mock.Anything, "o-1", model.OrderStatus(status)).Return(nil)

		u := newAdminUC(userRepo, productRepo, orderRepo)

		err := u.UpdateOrderStatus(ctx, "o-1", status)
		assert.NoError(t, err, status)

		orderRepo.AssertExpectations(t)
	}
}

func TestAdminUsecase_UpdateOrderStatus_RejectsUnknownValue(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	u := newAdminUC(userRepo, productRepo, orderRepo)

	err := u.UpdateOrderStatus(ctx, "o-1", "refunded")
	assertHTTPStatus(t, err, http.StatusBadRequest)

	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// Stats
// =====================

func TestAdminUsecase_Stats(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)

	userRepo.On("Count", mock.Anything).Return(int64(12), nil)
	orderRepo.On("Count", mock.Anything).Return(int64(34), nil)
	productRepo.On("Count", mock.Anything).Return(int64(56), nil)
	orderRepo.On("SumTotals", mock.Anything).Return(1234.56, nil)

	u := newAdminUC(userRepo, productRepo, orderRepo)

	stats, err := u.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(34), stats.TotalOrders)
	assert.Equal(t, int64(56), stats.TotalProducts)
	assert.Equal(t, 1234.56, stats.TotalRevenue)
}
