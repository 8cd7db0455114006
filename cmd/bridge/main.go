// cmd/bridge/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/deye-bridge/internal/api"
	"github.com/tamzrod/deye-bridge/internal/cache"
	"github.com/tamzrod/deye-bridge/internal/config"
	"github.com/tamzrod/deye-bridge/internal/monitor"
	"github.com/tamzrod/deye-bridge/internal/poller"
	"github.com/tamzrod/deye-bridge/internal/publish"
	"github.com/tamzrod/deye-bridge/internal/regmap"
)

func main() {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatalf("config load failed: %v", err)
	}

	log := setupLogger(cfg.LogLevel)

	specs, err := regmap.Load(cfg.RegTable, log)
	if err != nil {
		log.Fatalf("register map load failed: %v", err)
	}
	log.Infof("loaded %d register specs from %s (logger sn=%d)", len(specs), cfg.RegTable, cfg.LoggerSN)

	monitor.Register()
	monitor.RegsLoaded.Set(float64(len(specs)))

	// --------------------
	// Build the pipeline
	// --------------------

	store := cache.New()

	p, err := poller.Build(cfg, specs, store, log)
	if err != nil {
		log.Fatalf("poller build failed: %v", err)
	}

	if cfg.MQTTBroker != "" {
		pub, err := publish.NewMQTT(publish.Config{
			Broker:  cfg.MQTTBroker,
			Topic:   cfg.MQTTTopic,
			Timeout: cfg.RequestTimeout,
		})
		if err != nil {
			log.Warnf("mqtt connect failed: %v (snapshots will not be published)", err)
		} else {
			defer pub.Close()
			p.SetPublisher(pub)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// --------------------
	// Query surface
	// --------------------

	srv := api.New(store, p.Breaker(), len(specs), cfg.RoundDecimals, log)
	mux := http.NewServeMux()
	srv.Routes(mux, monitor.Handler())

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.ListenHost, cfg.ListenPort),
		Handler: mux,
	}

	go func() {
		log.Infof("listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	// --------------------
	// Graceful shutdown
	// --------------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return log
}
