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

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Skip < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid skip")
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 100
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Category: strings.TrimSpace(in.Category),
		Search:   strings.TrimSpace(in.Search),
		Skip:     in.Skip,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type ProductInput struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	InStock       *bool    `json:"in_stock"`
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Category:      in.Category,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		Description:   in.Description,
		Colors:        in.Colors,
		Sizes:         in.Sizes,
		InStock:       inStock,
		Rating:        4.0,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID string, in ProductInput) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(in.Name) != "" {
		p.Name = strings.TrimSpace(in.Name)
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = in.OriginalPrice
	}
	if in.Image != "" {
		p.Image = in.Image
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	p.UpdatedAt = time.Now()

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID string) error {
	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// 固定のカテゴリ一覧
func (u *ProductUsecase) Categories() []CategoryDTO {
	return []CategoryDTO{
		{ID: "tous", Name: "Tous les produits", Slug: "tous"},
		{ID: "sacs-a-main", Name: "Sacs à Main", Slug: "sacs-a-main"},
		{ID: "chaussures-femmes", Name: "Chaussures Femmes", Slug: "chaussures-femmes"},
		{ID: "chaussures-enfants", Name: "Chaussures Enfants", Slug: "chaussures-enfants"},
	}
}
