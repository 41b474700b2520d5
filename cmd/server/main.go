package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hoanglamvn01/cosmetic_shop/internal/config"
	"github.com/hoanglamvn01/cosmetic_shop/internal/db"
	"github.com/hoanglamvn01/cosmetic_shop/internal/events"
	"github.com/hoanglamvn01/cosmetic_shop/internal/httpserver"
	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/mail"
	loggingmw "github.com/hoanglamvn01/cosmetic_shop/internal/middleware/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/metrics"
	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/otp"
	"github.com/hoanglamvn01/cosmetic_shop/internal/payment"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/search"
	"github.com/hoanglamvn01/cosmetic_shop/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DSN())
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}

	userRepo := &repo.UserRepo{DB: gdb}
	catalogRepo := &repo.CatalogRepo{DB: gdb}
	cartRepo := &repo.CartRepo{DB: gdb}
	addressRepo := &repo.AddressRepo{DB: gdb}
	discountRepo := &repo.DiscountRepo{DB: gdb}
	orderRepo := &repo.OrderRepo{DB: gdb}
	reviewRepo := &repo.ReviewRepo{DB: gdb}
	contentRepo := &repo.ContentRepo{DB: gdb}

	var otpStore otp.Store
	if redisClient != nil {
		otpStore = &otp.RedisStore{Client: redisClient}
	} else {
		otpStore = otp.NewMemoryStore()
	}

	mailer := &mail.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPUser,
	}

	vnp := &payment.VNPay{
		TmnCode:    cfg.VNPayTmnCode,
		HashSecret: cfg.VNPayHashSecret,
		PayURL:     cfg.VNPayPayURL,
		ReturnURL:  cfg.VNPayReturnURL,
	}
	momo := payment.NewMoMo(
		cfg.MoMoPartnerCode,
		cfg.MoMoAccessKey,
		cfg.MoMoSecretKey,
		cfg.MoMoEndpoint,
		cfg.MoMoRedirectURL,
		cfg.MoMoIPNURL,
	)

	authSvc := service.NewAuthService(userRepo, otpStore, mailer, producer, cfg.JWTSecret, cfg.GoogleClientID)
	catalogSvc := &service.CatalogService{Repo: catalogRepo, Reviews: reviewRepo, ES: esClient}
	cartSvc := &service.CartService{Repo: cartRepo, Catalog: catalogRepo}
	addressSvc := &service.AddressService{Repo: addressRepo}
	discountSvc := service.NewDiscountService(discountRepo)
	orderSvc := service.NewOrderService(orderRepo, discountSvc, producer)
	paymentSvc := service.NewPaymentService(orderSvc, orderRepo, vnp, momo, producer)
	reviewSvc := &service.ReviewService{Repo: reviewRepo, Catalog: catalogRepo}
	contentSvc := &service.ContentService{Repo: contentRepo}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORS())

	httpserver.Register(e, httpserver.Deps{
		JWTSecret: cfg.JWTSecret,
		Redis:     redisClient,
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Address:   addressSvc,
		Discount:  discountSvc,
		Order:     orderSvc,
		Payment:   paymentSvc,
		Review:    reviewSvc,
		Content:   contentSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
