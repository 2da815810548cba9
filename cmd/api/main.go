package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/auth"
	"github.com/BruksfildServices01/inkless-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/inkless-booking/internal/db"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/infra/idempotency"
	infraRepo "github.com/BruksfildServices01/inkless-booking/internal/infra/repository"
	"github.com/BruksfildServices01/inkless-booking/internal/infra/storage"
	"github.com/BruksfildServices01/inkless-booking/internal/jobs"
	"github.com/BruksfildServices01/inkless-booking/internal/logger"
	"github.com/BruksfildServices01/inkless-booking/internal/middleware"
	"github.com/BruksfildServices01/inkless-booking/internal/payment"
	"github.com/BruksfildServices01/inkless-booking/internal/routes"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "inkless-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.JWTTTL)
	if err := tokens.Ready(); err != nil {
		log.Fatal("auth", zap.Error(err))
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Tokens:   tokens,
		Payments: buildPayments(cfg, log),
	}

	if cfg.RedisAddr != "" {
		client := idempotency.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unavailable, idempotency keys disabled", zap.Error(err))
		} else {
			deps.Idempotency = idempotency.NewRedisStore(client, idempotency.DefaultTTL)
			defer client.Close()
		}
		cancel()
	}

	if cfg.S3.Enabled() {
		deps.Storage = storage.NewS3Store(storage.S3Config{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	} else {
		log.Info("S3 not configured, logo uploads disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORSMiddleware(cfg.AllowedOrigins...))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := jobs.NewExpirySweeper(infraRepo.NewMaintenanceGormRepository(db), cfg.SweepInterval, log)
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildPayments registers the gateways that have credentials.
func buildPayments(cfg *config.Config, log *zap.Logger) *payment.Registry {
	reg := payment.NewRegistry()

	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, log)
		if err != nil {
			log.Warn("mercadopago disabled", zap.Error(err))
		} else {
			reg.Register(string(purchase.PaymentCard), mp)
		}
	}

	if cfg.Mpesa.Enabled() {
		reg.Register(string(purchase.PaymentMpesa), payment.NewMpesa(payment.MpesaConfig{
			BaseURL:        cfg.Mpesa.BaseURL,
			ConsumerKey:    cfg.Mpesa.ConsumerKey,
			ConsumerSecret: cfg.Mpesa.ConsumerSecret,
			ShortCode:      cfg.Mpesa.ShortCode,
			Passkey:        cfg.Mpesa.Passkey,
			CallbackURL:    cfg.Mpesa.CallbackURL,
		}, log))
	}

	return reg
}
