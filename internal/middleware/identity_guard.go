package middleware

import (
	"net/http"

	"tkbshop/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのsubから毎リクエストDBのuserを引き直す。
// 削除済み・無効化済みのuserはtokenが生きていても401。
func IdentityGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//無効化されたアカウントは強制ログアウト扱い（401）
			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserRoleKey, user.Role)

			return next(c)
		}
	}
}
