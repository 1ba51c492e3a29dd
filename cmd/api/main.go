package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chadee/pos-backend/internal/catalog"
	"github.com/chadee/pos-backend/internal/config"
	"github.com/chadee/pos-backend/internal/httpx"
	kafkax "github.com/chadee/pos-backend/internal/kafka"
	"github.com/chadee/pos-backend/internal/orders"
	"github.com/chadee/pos-backend/internal/postgres"
	"github.com/chadee/pos-backend/internal/redisx"
	"github.com/chadee/pos-backend/internal/reporting"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	// money renders as JSON numbers, the way the storefront expects
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	loc := cfg.Location()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	cache := &redisx.RedisCache{R: rdb}

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	// Repos & handlers
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Store:    &orders.Repo{DB: db},
		Producer: prod,
		Cache:    cache,
		Location: loc,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)
	ph := &httpx.ProductsHandler{
		Store: &catalog.Repo{DB: db},
		Cache: cache,
	}
	ph.Register(router)
	rh := &httpx.ReportsHandler{
		Live:     &reporting.RedisCounters{R: rdb, Service: cfg.ServiceName},
		Location: loc,
	}
	rh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s (shop tz %s)", cfg.HTTPAddr, loc)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
