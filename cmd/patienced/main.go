// Command patienced serves hosted solitaire games over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"patience/internal/cache"
	"patience/internal/config"
	"patience/internal/server"
	"patience/internal/share"
	"patience/internal/store"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogrusLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		st, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("postgres unavailable")
		}
		defer st.Close()
		log.Info("postgres connected")
	} else {
		log.Info("DATABASE_URL not set, running without persistence")
	}

	var c *cache.Cache
	if cfg.RedisURL != "" {
		var err error
		c, err = cache.Open(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("redis unavailable")
		}
		defer c.Close()
		log.Info("redis connected")
	} else {
		log.Info("REDIS_URL not set, running without move history")
	}

	srv := server.New(st, c, share.NewBuilder(cfg.BaseURL), log)
	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	srv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown incomplete")
	}
}
