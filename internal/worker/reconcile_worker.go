package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/t-ecosystem/market_api/internal/config"
	"github.com/t-ecosystem/market_api/internal/service"
)

// ReconcileWorker periodically sweeps pending checkout sessions whose
// webhook never arrived and settles them against the payment provider.
type ReconcileWorker struct {
	checkoutService *service.CheckoutService
	cfg             config.WorkerConfig
}

// NewReconcileWorker constructs a ReconcileWorker.
func NewReconcileWorker(checkoutService *service.CheckoutService, cfg config.WorkerConfig) *ReconcileWorker {
	return &ReconcileWorker{
		checkoutService: checkoutService,
		cfg:             cfg,
	}
}

// Start begins the periodic reconcile loop until context is canceled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.cfg.ReconcileInterval).Msg("Starting reconcile worker")

	ticker := time.NewTicker(w.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Reconcile worker stopped")
			return
		}
	}
}

func (w *ReconcileWorker) run(ctx context.Context) {
	if err := w.checkoutService.Reconcile(ctx, w.cfg.SessionStaleAfter, w.cfg.SessionMaxAge); err != nil {
		log.Error().Err(err).Msg("Checkout reconciliation failed")
	}
}
