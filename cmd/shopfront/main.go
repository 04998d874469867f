package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/cart"
	"github.com/ghrd1/shop-front/internal/catalog"
	"github.com/ghrd1/shop-front/internal/checkout"
	"github.com/ghrd1/shop-front/internal/config"
	"github.com/ghrd1/shop-front/internal/orders"
	"github.com/ghrd1/shop-front/internal/session"
	"github.com/ghrd1/shop-front/internal/store"
	"github.com/ghrd1/shop-front/internal/web"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(sdktrace.NewTracerProvider())

	st, cleanup, err := newStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to set up persisted store")
	}
	defer cleanup()

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	sessions := session.NewManager(st, client, log)
	client.SetTokenSource(sessions.Token)

	engine := cart.NewEngine(st)
	coordinator := checkout.NewCoordinator(st, client, log)
	history := orders.NewHistory(client)
	browser := catalog.NewBrowser(client)

	ctx := context.Background()
	if err := sessions.Initialize(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize session")
	}
	if sessions.IsAuthenticated() {
		user, _ := sessions.User()
		log.WithField("email", user.Email).Info("session restored from stored token")
	}

	router := web.NewRouter(web.Deps{
		Sessions:    sessions,
		Catalog:     browser,
		Cart:        engine,
		Coordinator: coordinator,
		History:     history,
		API:         client,
		Log:         log,
		Timeout:     cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("shopfront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

func newStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		return store.NewRedisStore(client), func() { client.Close() }, nil
	case "file":
		return store.NewFileStore(cfg.StateFile), func() {}, nil
	default:
		return nil, nil, errors.New("STORE_BACKEND must be file or redis")
	}
}
