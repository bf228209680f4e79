package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "loan-origination/internal/adapter/http"
	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/config"
	"loan-origination/internal/infrastructure/cache"
	"loan-origination/internal/infrastructure/db"
	"loan-origination/internal/infrastructure/logger"
	"loan-origination/internal/infrastructure/storage"
	ucApplication "loan-origination/internal/usecase/application"
	ucCounsel "loan-origination/internal/usecase/counsel"
	ucFile "loan-origination/internal/usecase/file"
	ucTerms "loan-origination/internal/usecase/terms"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.Open(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}
	log.Info("database ready", zap.String("driver", cfg.DBDriver))

	files, err := storage.NewOS(cfg.UploadDir)
	if err != nil {
		log.Fatal("open upload storage", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("database handle", zap.Error(err))
	}
	checks := map[string]httpadp.Check{"database": sqlDB.PingContext}

	appRepo := mysql.NewApplicationRepository(gdb)
	h := httpadp.Handlers{
		Applications: httpadp.NewApplicationHandler(ucApplication.NewUsecase(appRepo, mysql.NewGormUoW(gdb), log)),
		Counsels:     httpadp.NewCounselHandler(ucCounsel.NewUsecase(mysql.NewCounselRepository(gdb), log)),
		Terms:        httpadp.NewTermsHandler(ucTerms.NewUsecase(mysql.NewTermsRepository(gdb), log)),
		Files:        httpadp.NewFileHandler(ucFile.NewUsecase(appRepo, files, log)),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	h.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	metrics := middleware.NewMetrics(reg)

	apiMW := []echo.MiddlewareFunc{
		middleware.AccessLog(log),
		echomw.BodyLimit(strconv.FormatInt(cfg.MaxUploadBytes, 10)+"B"),
	}
	rdb, err := cache.OpenRedis(context.Background(), cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Warn("redis unavailable, idempotency disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	} else {
		defer func() { _ = rdb.Close() }()
		apiMW = append(apiMW, middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	h.Health = httpadp.NewHandler(checks)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.NewHTTPErrorHandler(log)
	// metrics wraps Recover so recovered panics are counted as 500s
	e.Use(middleware.RequestID(), metrics.Middleware(), echomw.Recover())
	httpadp.Register(e, h, apiMW...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", zap.Error(err))
	}
	_ = sqlDB.Close()
}
