package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"rentorsale_backend/internal/app/router"
	"rentorsale_backend/internal/config"
	apartmentadapters "rentorsale_backend/internal/feature/apartments/adapters"
	apartmenthandler "rentorsale_backend/internal/feature/apartments/transport/handler"
	apartmentusecase "rentorsale_backend/internal/feature/apartments/usecase"
	authadapters "rentorsale_backend/internal/feature/auth/adapters"
	authhandler "rentorsale_backend/internal/feature/auth/transport/handler"
	authusecase "rentorsale_backend/internal/feature/auth/usecase"
	listingadapters "rentorsale_backend/internal/feature/listings/adapters"
	listinghandler "rentorsale_backend/internal/feature/listings/transport/handler"
	listingusecase "rentorsale_backend/internal/feature/listings/usecase"
	userhandler "rentorsale_backend/internal/feature/users/transport/handler"
	userusecase "rentorsale_backend/internal/feature/users/usecase"
	"rentorsale_backend/internal/platform/cache"
	platformdb "rentorsale_backend/internal/platform/db"
	platformhttp "rentorsale_backend/internal/platform/http"
	"rentorsale_backend/internal/platform/mail"
	"rentorsale_backend/internal/platform/notify"
	platformredis "rentorsale_backend/internal/platform/redis"
	"rentorsale_backend/internal/platform/storage"
	"rentorsale_backend/internal/platform/token"
	"rentorsale_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg := config.Load()

	// db
	db, err := platformdb.Open(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// オブジェクトストレージ（掲載画像の保管先）
	store, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to connect object storage: %v", err)
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	apartmentRepo := apartmentadapters.NewApartmentPostgres(db)
	listingRepo := listingadapters.NewListingPostgres(db)
	imageRepo := listingadapters.NewImagePostgres(db)

	// Redisキャッシュでラップ
	cachedApartmentRepo := cache.NewCachingApartmentRepository(rdb, 10*time.Minute, apartmentRepo, "apartments")

	// 外部コラボレーター
	tokens := token.NewService(cfg.Token)
	mailer := mail.NewLogMailer(cfg.MailFrom)
	webhookClient := platformhttp.NewHTTPClient(15 * time.Second)
	webhookLimiter := ratelimiter.NewRateLimiter(30, time.Minute)
	notifier := notify.NewWebhookNotifier(cfg.WebhookURL, webhookClient, webhookLimiter)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	resetUC := authusecase.NewResetUsecase(userRepo, mailer)
	apartmentUC := apartmentusecase.NewApartmentUsecase(cachedApartmentRepo)
	listingUC := listingusecase.NewListingUsecase(listingRepo, imageRepo, store, notifier)
	userUC := userusecase.NewUserUsecase(userRepo, listingRepo, listingUC)

	// Handler
	handlers := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Reset:      authhandler.NewResetHandler(resetUC),
		Users:      userhandler.NewUserHandler(userUC),
		Apartments: apartmenthandler.NewApartmentHandler(apartmentUC),
		Listings:   listinghandler.NewListingHandler(listingUC),
	}

	// ルータ生成
	r := router.NewRouter(handlers, tokens, cfg.CORSOrigins)

	// SECRET_KEYチェック（開発中の注意喚起）
	if cfg.Token.Secret == "" {
		log.Println("[WARN] SECRET_KEY is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
