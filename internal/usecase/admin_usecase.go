package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"tkbshop/internal/domain/model"
	repo "tkbshop/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 管理画面のユーザー・注文・統計。
type AdminUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
}

func NewAdminUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type AdminListUsersInput struct {
	Search string
	Skip   int
	Limit  int
}

func (u *AdminUsecase) ListUsers(ctx context.Context, in AdminListUsersInput) ([]UserDTO, error) {
	if in.Skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 100
	}

	users, err := u.userRepo.List(ctx, repo.UserListQuery{
		Search: in.Search,
		Skip:   in.Skip,
		Limit:  in.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

type AdminCreateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// 管理者によるユーザー作成。登録と同じだがtokenは返さない。
func (u *AdminUsecase) CreateUser(ctx context.Context, in AdminCreateUserInput) (*UserDTO, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
		Phone:        in.Phone,
		Address:      in.Address,
		Avatar:       defaultAvatarURL,
		IsActive:     true,
		JoinDate:     time.Now(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

type AdminUpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Avatar    *string `json:"avatar"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

// 管理者はrole含めて任意のフィールドを変更できる。
func (u *AdminUsecase) UpdateUser(ctx context.Context, userID string, in AdminUpdateUserInput) (*UserDTO, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Role != nil {
		switch model.Role(*in.Role) {
		case model.RoleCustomer, model.RoleAdmin:
			user.Role = model.Role(*in.Role)
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusBadRequest, "Email already taken")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// 管理者アカウントは削除できない。
func (u *AdminUsecase) DeleteUser(ctx context.Context, userID string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if user.Role == model.RoleAdmin {
		return NewHTTPError(http.StatusBadRequest, "Cannot delete admin users")
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminUsecase) ListOrders(ctx context.Context, skip int, limit int) ([]model.Order, error) {
	if skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}

	orders, err := u.orderRepo.ListAdmin(ctx, repo.AdminOrderListFilter{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// ステータス更新。4値のどれかならそのまま受け付ける。
// 遷移表はあえて持たない（管理者の差し戻しも通す）。
func (u *AdminUsecase) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	switch model.OrderStatus(status) {
	case model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "Invalid status. Must be one of: processing, shipped, delivered, cancelled")
	}

	err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatus(status))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminUsecase) DeleteOrder(ctx context.Context, orderID string) error {
	err := u.orderRepo.Delete(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type DashboardStats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalOrders   int64   `json:"total_orders"`
	TotalProducts int64   `json:"total_products"`
	TotalRevenue  float64 `json:"total_revenue"`
}

func (u *AdminUsecase) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue, err := u.orderRepo.SumTotals(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &DashboardStats{
		TotalUsers:    users,
		TotalOrders:   orders,
		TotalProducts: products,
		TotalRevenue:  revenue,
	}, nil
}
