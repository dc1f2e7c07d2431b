package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret      string        // JWT署名シークレット（必須）
	AccessTokenTTL time.Duration // アクセストークン有効期限（分、デフォルト30）

	CORSOrigins []string // 許可するオリジン

	StripeAPIKey        string // StripeのAPIキー（未設定なら決済は503）
	StripeWebhookSecret string // webhook署名検証用シークレット

	FrontendURL string // チェックアウトのリダイレクト先
}

// Loadは環境変数から設定を読む。
// JWT_SECRETが無ければ起動させない。
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	//トークン有効期限（分）
	minutes := 30
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m <= 0 {
			return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive number")
		}
		minutes = m
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	//CORSはカンマ区切り
	origins := getenv("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
