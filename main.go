package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledger "offer-bidding/internal/bidLedger"
	"offer-bidding/internal/config"
	"offer-bidding/internal/events"
	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
	"offer-bidding/internal/repository"
	"offer-bidding/internal/server"
	"offer-bidding/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)
	utils.Info("configuration loaded", map[string]any{"config": cfg.String()})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"driver": cfg.Storage.Driver, "error": err.Error()})
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to connect to redis", map[string]any{"address": cfg.Redis.Address, "error": err.Error()})
	}
	defer closePublisher()

	bidLedger := ledger.NewLedger(store,
		ledger.WithPublisher(publisher),
		ledger.WithMaxAttempts(cfg.Ledger.MaxAttempts),
	)
	router := server.SetupRouter(bidLedger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		utils.Info("starting offer bidding server", map[string]any{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down server", nil)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("forced shutdown", map[string]any{"error": err.Error()})
	}
}

// openStore returns the configured BidStore and a function releasing it
func openStore(ctx context.Context, cfg *config.Config) (repository.BidStore, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		repo := repository.NewMemoryRepo()
		prepopulate(repo)
		return repo, func() {}, nil
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if cfg.MySQL.Migrate {
		if err := repository.RunMigrations(cfg.MySQL.DSN); err != nil {
			db.Close()
			return nil, nil, err
		}
		utils.Info("database migrations applied", nil)
	}
	return repository.NewMySQLRepo(db), func() { db.Close() }, nil
}

func openPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, func(), error) {
	if !cfg.Redis.Enabled {
		return events.NopPublisher{}, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return events.NewRedisPublisher(rdb, cfg.Redis.Channel), func() { rdb.Close() }, nil
}

// prepopulate adds sample offers and accounts to the in-memory repo
func prepopulate(repo *repository.MemoryRepo) {
	created := time.Now().UTC()
	offers := []models.Offer{
		{OfferID: "offer1", OwnerID: "lister1", Title: "City bike", Type: models.OfferWithMinimum, MinimumPrice: money.MustParse("20"), Status: models.OfferPublished, CreatedAt: created},
		{OfferID: "offer2", OwnerID: "lister1", Title: "Desk lamp", Type: models.OfferNoMinimum, Status: models.OfferPublished, CreatedAt: created},
		{OfferID: "offer3", OwnerID: "lister2", Title: "Bookshelf", Type: models.OfferWithMinimum, MinimumPrice: money.MustParse("45.50"), Status: models.OfferDraft, CreatedAt: created},
	}
	for _, offer := range offers {
		repo.AddOffer(offer)
	}

	accounts := []models.Account{
		{UserID: "lister1", DisplayName: "Lena"},
		{UserID: "lister2", DisplayName: "Omar"},
		{UserID: "user1", DisplayName: "Alice"},
		{UserID: "user2", DisplayName: "Bob"},
	}
	for _, acc := range accounts {
		repo.AddAccount(acc)
	}
}
