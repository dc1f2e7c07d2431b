package repository

import (
	"context"
	"errors"

	"tkbshop/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// email重複（uniqueIndex違反）を統一
var ErrDuplicateEmail = errors.New("duplicate email")

// ユーザー一覧の絞り込み
type UserListQuery struct {
	Search string
	Skip   int
	Limit  int
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。email重複はErrDuplicateEmail
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//管理者用の一覧（名前・メールの部分一致検索つき）
	List(ctx context.Context, q UserListQuery) ([]model.User, error)
	// ユーザー情報の更新=>プロフィール変更・最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
	//ユーザー削除
	Delete(ctx context.Context, userID string) error
	//全ユーザー数
	Count(ctx context.Context) (int64, error)
}
