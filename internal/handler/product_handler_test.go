package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tkbshop/internal/domain/model"
	"tkbshop/internal/handler"
	"tkbshop/internal/repository"
	"tkbshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// ProductRepository モック（handler層のテスト用）
// =====================

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, q repository.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.ProductRepository = (*MockProductRepo)(nil)

func newProductServer(repo *MockProductRepo) *echo.Echo {
	e := echo.New()
	h := handler.NewProductHandler(usecase.NewProductUsecase(repo))
	h.RegisterRoutes(e.Group("/api"))
	return e
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var resp handler.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return resp.Error
}

// =====================
// GET /api/products/:id
// =====================

func TestProductHandler_Detail_MalformedID(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	//uuidとして読めないidはDBに行く前に400
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductHandler_Detail_NotFound(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	id := uuid.NewString()
	repo.On("FindByID", mock.Anything, id).Return(model.Product{}, repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeError(t, rec.Body.Bytes()))
}

func TestProductHandler_Detail_Found(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	id := uuid.NewString()
	repo.On("FindByID", mock.Anything, id).Return(model.Product{
		ID:    id,
		Name:  "Sac à main",
		Price: 49.99,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Sac à main", p.Name)
}

// =====================
// GET /api/products
// =====================

func TestProductHandler_List_InvalidSkip(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products?skip=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_List_FiltersPassedThrough(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(q repository.ProductListQuery) bool {
		return q.Category == "sacs-a-main" && q.Search == "cuir" && q.Skip == 10 && q.Limit == 5
	})).Return([]model.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=sacs-a-main&search=cuir&skip=10&limit=5", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

// =====================
// GET /api/products/categories/list
// =====================

func TestProductHandler_Categories(t *testing.T) {
	repo := new(MockProductRepo)
	e := newProductServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products/categories/list", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cats []usecase.CategoryDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.NotEmpty(t, cats)
}
