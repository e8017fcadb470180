package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"offerboard/internal/cache"
	"offerboard/internal/config"
	"offerboard/internal/db"
	"offerboard/internal/httpserver"
	categoryrepo "offerboard/internal/repository/category"
	enterpriserepo "offerboard/internal/repository/enterprise"
	offerrepo "offerboard/internal/repository/offer"
	categorysvc "offerboard/internal/service/category"
	enterprisesvc "offerboard/internal/service/enterprise"
	offersvc "offerboard/internal/service/offer"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger := config.NewLogger(cfg.LogLevel).WithField("app", "api")

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	enterpriseService := enterprisesvc.New(enterpriserepo.NewPostgres(dbpool))
	offerService := offersvc.New(offerrepo.NewPostgres(dbpool, logger), categoryService, enterpriseService, logger)

	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("connect to redis")
		}
		defer rdb.Close()
		offerService.WithCache(cache.NewOffers(rdb, cfg.CacheTTL))
		logger.WithField("ttl", cfg.CacheTTL).Info("offert cache enabled")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		OfferSvc:      offerService,
		CategorySvc:   categoryService,
		EnterpriseSvc: enterpriseService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}
