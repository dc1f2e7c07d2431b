package validator

import (
	"context"
	"regexp"
	"strings"

	"tkbshop/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証。
// email重複はここでは見ない（DBのuniqueIndexに任せる）。
func (v *authValidator) ValidateRegister(ctx context.Context, req usecase.AuthRegisterRequest) error {
	email := strings.TrimSpace(req.Email)

	// 必須チェック
	if email == "" || req.Password == "" {
		return usecase.ErrValidation
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return usecase.ErrValidation
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	// パスワード最低文字数
	if len(req.Password) < 8 {
		return usecase.ErrValidation
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.ErrValidation
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
