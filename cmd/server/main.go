package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/jobmarket-backend/internal/config"
	"github.com/ignatzorin/jobmarket-backend/internal/db"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/goroutine"
	httpRouter "github.com/ignatzorin/jobmarket-backend/internal/http/router"
	"github.com/ignatzorin/jobmarket-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/jobmarket-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/handler"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/service"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/account"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/bid"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/catalog"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

// storage bundles the repositories of one storage driver.
type storage struct {
	items     repository.JobItemRepository
	jobs      repository.JobListingRepository
	bids      repository.BidRepository
	customers repository.CustomerRepository
	vendors   repository.VendorRepository
	uow       repository.UnitOfWork
	pinger    handler.Pinger
	close     func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: load config: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init(cfg.LogLevel)
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("main: open storage: %v", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Log.Errorf("main: close storage: %v", err)
		}
	}()

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	resolveTask := catalog.NewResolveTaskUseCase(st.items)

	handlers := httpRouter.Handlers{
		Auth: handler.NewAuthHandler(
			account.NewRegisterCustomerUseCase(st.customers, hasher),
			account.NewRegisterVendorUseCase(st.vendors, hasher),
			account.NewCustomerLoginUseCase(st.customers, hasher, tokenManager),
			account.NewVendorLoginUseCase(st.vendors, hasher, tokenManager),
		),
		Catalog: handler.NewCatalogHandler(
			catalog.NewListTreeUseCase(st.items),
			catalog.NewCreateItemUseCase(st.items),
		),
		Job: handler.NewJobHandler(
			job.NewCreateJobUseCase(st.jobs, resolveTask),
			job.NewListJobsUseCase(st.jobs),
			job.NewGetJobUseCase(st.jobs),
			job.NewCancelJobUseCase(st.jobs),
			job.NewListOpenJobsUseCase(st.jobs),
			job.NewStartWorkUseCase(st.jobs),
			job.NewMarkCompletedUseCase(st.jobs),
		),
		Bid: handler.NewBidHandler(
			bid.NewPlaceBidUseCase(st.uow),
			bid.NewListJobBidsUseCase(st.jobs, st.bids),
			bid.NewListMyBidsUseCase(st.bids),
			bid.NewAcceptBidUseCase(st.uow),
			bid.NewRejectBidUseCase(st.uow),
			bid.NewWithdrawBidUseCase(st.uow),
		),
		Health: handler.NewHealthHandler(st.pinger, cfg.StorageDriver),
	}

	engine, err := httpRouter.SetupRouter(cfg, handlers, tokenManager)
	if err != nil {
		logger.Log.Fatalf("main: setup router: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Log.Fatalf("main: listen: %v", err)
	}

	logger.Log.WithField("port", cfg.HTTPPort).WithField("storage", cfg.StorageDriver).Info("http server started")

	if err := serve(ctx, server, listener, 10*time.Second); err != nil {
		logger.Log.Errorf("main: http server: %v", err)
		return
	}
	logger.Log.Info("http server stopped")
}

// serve runs server until ctx is cancelled. It returns only after the
// graceful shutdown has finished.
func serve(ctx context.Context, server *http.Server, listener net.Listener, shutdownTimeout time.Duration) error {
	shutdownDone := make(chan struct{})
	goroutine.NewRecoveryHandler(logger.Log).SafeGoWithContext(ctx, func(ctx context.Context) {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: shutdown http server: %v", err)
		}
	})

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.New()
		return &storage{
			items:     store.JobItems(),
			jobs:      store.Jobs(),
			bids:      store.Bids(),
			customers: store.Customers(),
			vendors:   store.Vendors(),
			uow:       store,
			pinger:    store,
			close:     store.Close,
		}, nil
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	return &storage{
		items:     persistence.NewJobItemRepositoryAdapter(dbConn),
		jobs:      persistence.NewJobListingRepositoryAdapter(dbConn),
		bids:      persistence.NewBidRepositoryAdapter(dbConn),
		customers: persistence.NewCustomerRepositoryAdapter(dbConn),
		vendors:   persistence.NewVendorRepositoryAdapter(dbConn),
		uow:       persistence.NewUnitOfWork(dbConn),
		pinger:    dbConn,
		close:     dbConn.Close,
	}, nil
}
