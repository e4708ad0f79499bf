package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agrihub/internal/config"
	"agrihub/internal/db"
	"agrihub/internal/httpserver"
	advisorrepo "agrihub/internal/repository/advisor"
	cartitemrepo "agrihub/internal/repository/cartitem"
	categoryrepo "agrihub/internal/repository/category"
	diagnosisrepo "agrihub/internal/repository/diagnosis"
	notificationrepo "agrihub/internal/repository/notification"
	orderrepo "agrihub/internal/repository/order"
	postrepo "agrihub/internal/repository/post"
	productrepo "agrihub/internal/repository/product"
	profilerepo "agrihub/internal/repository/profile"
	tokenrepo "agrihub/internal/repository/token"
	advisorysvc "agrihub/internal/service/advisory"
	authsvc "agrihub/internal/service/auth"
	cartsvc "agrihub/internal/service/cart"
	communitysvc "agrihub/internal/service/community"
	diagnosissvc "agrihub/internal/service/diagnosis"
	notificationsvc "agrihub/internal/service/notification"
	ordersvc "agrihub/internal/service/order"
	productsvc "agrihub/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	profileRepo := profilerepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	cartItemRepo := cartitemrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	advisorRepo := advisorrepo.NewPostgres(dbpool)
	postRepo := postrepo.NewPostgres(dbpool)
	diagnosisRepo := diagnosisrepo.NewPostgres(dbpool)
	notificationRepo := notificationrepo.NewPostgres(dbpool)

	notifyService := notificationsvc.New(notificationRepo)
	authService := authsvc.New(profileRepo, tokenRepo)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartItemRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartItemRepo, productRepo, notifyService, logger)
	advisoryService := advisorysvc.New(advisorRepo, notifyService, logger)
	communityService := communitysvc.New(postRepo)
	diagnosisService := diagnosissvc.New(diagnosisRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:      authService,
		ProductSvc:   productService,
		Categories:   categoryRepo,
		CartSvc:      cartService,
		OrderSvc:     orderService,
		AdvisorySvc:  advisoryService,
		CommunitySvc: communityService,
		DiagnosisSvc: diagnosisService,
		NotifySvc:    notifyService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
