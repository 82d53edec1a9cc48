package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lavka-be/internal/cache"
	"lavka-be/internal/cart"
	"lavka-be/internal/config"
	"lavka-be/internal/db"
	"lavka-be/internal/events"
	"lavka-be/internal/logger"
	"lavka-be/internal/order"
	"lavka-be/internal/payment"
	"lavka-be/internal/product"
	"lavka-be/internal/promo"
	"lavka-be/internal/tracing"
	"lavka-be/internal/transport/rest"
	"lavka-be/internal/user"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	shutdownTracing, err := tracing.Init("lavka-be", cfg)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
		shutdownTracing = func() {}
	}
	defer shutdownTracing()

	database, err := db.InitDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	rdb, err := cache.InitRedis(cfg)
	if err != nil {
		log.Warn("redis unavailable, product cache disabled", zap.Error(err))
		rdb = nil
	}

	var publisher events.Publisher
	producer, err := events.InitProducer(cfg)
	if err != nil {
		log.Warn("kafka unavailable, order events disabled", zap.Error(err))
	} else {
		defer producer.Close()
		publisher = events.NewPublisher(producer)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, rdb)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	promoRepo := promo.NewRepository(database)
	promoSvc := promo.NewService(promoRepo)

	paymentRepo := payment.NewRepository(database)
	gateway := payment.NewYooKassaGateway(cfg.YooKassaShopID, cfg.YooKassaSecretKey)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(order.ServiceDeps{
		Repo:        orderRepo,
		CartService: cartSvc,
		PromoSvc:    promoSvc,
		PaymentRepo: paymentRepo,
		Gateway:     gateway,
		Publisher:   publisher,
		BaseURL:     cfg.BaseURL,
	})

	handler := rest.NewHandler(cfg, userSvc, productSvc, cartSvc, promoSvc, orderSvc)
	router := rest.NewRouter(handler)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      corsWrapper.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
