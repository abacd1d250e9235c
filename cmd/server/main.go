package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/format"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/controller"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/middleware"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/router"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/memory"
	"github.com/api-sage/bankist-demo-bank/internal/config"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	accountRepo, err := memory.NewAccountRepository(memory.DefaultSeedAccounts())
	if err != nil {
		log.Fatalf("seed account store: %v", err)
	}

	formatter := format.NewService()

	sessionService := services.NewSessionService(
		accountRepo,
		formatter,
		cfg.SessionTimeoutSeconds,
		cfg.TimerTickInterval,
		cfg.JWTSecret,
		nil,
	)
	transferService := services.NewTransferService(accountRepo, sessionService, nil)
	loanService := services.NewLoanService(accountRepo, sessionService, cfg.LoanPostingDelay, nil)
	accountService := services.NewAccountService(accountRepo, sessionService, formatter, nil)

	// A session that ends for any reason takes its scheduled loan
	// postings with it.
	sessionService.OnSessionEnd(loanService.CancelPendingForSession)

	handler := router.New(
		controller.NewSessionController(sessionService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		controller.NewLoanController(loanService),
		middleware.SessionAuth(sessionService),
	)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", logger.Fields{
			"addr": cfg.ListenAddr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("server stopped", nil)
}
