package main

import (
	"log"

	"tkbshop/internal/config"
	"tkbshop/internal/domain/model"
	"tkbshop/internal/gateway"
	"tkbshop/internal/handler"
	"tkbshop/internal/infra/db"
	infraRepo "tkbshop/internal/infra/repository"
	"tkbshop/internal/server"
	"tkbshop/internal/usecase"
	"tkbshop/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentTransaction{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txRepo := infraRepo.NewPaymentTransactionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Stripeゲートウェイ（キー未設定なら決済系は503を返す）
	gw := gateway.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	if cfg.StripeAPIKey == "" {
		log.Println("STRIPE_API_KEY not set, checkout disabled")
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator())
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cfg, gw, txRepo, txManager)
	adminUC := usecase.NewAdminUsecase(userRepo, productRepo, orderRepo)

	//Handler生成
	deps := server.Deps{
		UserRepo: userRepo,

		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Order:        handler.NewOrderHandler(orderUC),
		Payment:      handler.NewPaymentHandler(checkoutUC, userRepo),
		AdminUser:    handler.NewAdminUserHandler(adminUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	}

	//Server起動
	e := server.New(cfg, deps)
	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}
