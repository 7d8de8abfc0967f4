package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/api/handlers"
	"github.com/5w1tchy/smart-library-api/internal/api/router"
	"github.com/5w1tchy/smart-library-api/internal/config"
	"github.com/5w1tchy/smart-library-api/internal/events"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"github.com/5w1tchy/smart-library-api/internal/logging"
	"github.com/5w1tchy/smart-library-api/internal/metrics"
	"github.com/5w1tchy/smart-library-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/smart-library-api/internal/store/books"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.App.Debug)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	opts := library.Options{
		DefaultPageSize: cfg.Paging.DefaultPageSize,
		MaxPageSize:     cfg.Paging.MaxPageSize,
		Logger:          log,
	}
	if m != nil {
		opts.Metrics = m
	}

	var queue *events.Queue
	if cfg.Events.Enabled() {
		rdb, err := events.DialRedis(cfg.Events.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at startup; events will retry per batch", zap.Error(err))
		}
		qo := events.QueueOptions{
			Buffer:  cfg.Events.Buffer,
			Workers: cfg.Events.Workers,
			Logger:  log,
		}
		if m != nil {
			qo.OnDrop = m.DropEvent
		}
		queue = events.NewQueue(events.NewRedisPublisher(rdb, cfg.Events.Channel), qo)
		opts.Events = queue
		log.Info("book change events enabled", zap.String("channel", cfg.Events.Channel))
	}

	svc := library.NewService(store, opts)

	mux := router.Router(router.Deps{
		Library: svc,
		Info:    handlers.AppInfo{Name: cfg.App.Name, Version: cfg.App.Version},
		Log:     log,
		Metrics: m,
	})
	handler := router.Secure(mux, router.StackOptions{
		Log:            log,
		Metrics:        m,
		CORSOrigins:    cfg.Security.CORSOrigins,
		MaxBodySize:    cfg.Security.MaxBodySize,
		StrictSecurity: cfg.Security.StrictSecurity,
		APIVersion:     cfg.App.Version,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:     zap.NewStdLog(log),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server is running",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("tls", cfg.Server.TLSEnabled()),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("env", cfg.App.Env),
		)
		var err error
		if cfg.Server.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		serveErr <- err
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
			log.Error("server failed; draining before exit", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdown(cfg.Server.ShutdownTimeout, server, queue, log)
	return runErr
}

// shutdown stops the HTTP server and drains pending book events. It runs on
// every exit path of run, including a failed listener.
func shutdown(timeout time.Duration, server *http.Server, queue *events.Queue, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if queue != nil {
		if err := queue.Shutdown(ctx); err != nil {
			log.Error("event queue drain", zap.Error(err))
		}
	}
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (library.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using in-memory book store; data is lost on exit")
		return books.NewMemory(), func() {}, nil
	}
	db, err := sqlconnect.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to database", zap.String("driver", cfg.Driver))
	return books.New(db, cfg.Driver), func() { db.Close() }, nil
}
