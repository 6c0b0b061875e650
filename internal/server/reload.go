package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrNoSource is returned by Reload when the handler has no policy source.
var ErrNoSource = errors.New("no rate policy source configured")

// Reload re-reads the policy source, builds a new engine and swaps it in.
// On failure the serving engine is left untouched.
func (h *Handler) Reload() error {
	if h.source == nil {
		return ErrNoSource
	}
	cfg, err := h.source.Load()
	if err == nil {
		err = h.apply(cfg)
	}
	h.metrics.Reloaded(err)
	return err
}

func (h *Handler) apply(cfg *config.Configuration) error {
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	for _, warning := range cfg.ValidateConfiguration() {
		h.logger.Warn("rate policy warning",
			zap.String("op", "server.Reload"),
			zap.String("warning", warning),
		)
	}
	h.Swap(engine.New(table, h.logger))
	h.logger.Info("rate policy reloaded",
		zap.String("op", "server.Reload"),
		zap.String("source", h.source.Path()),
	)
	return nil
}

// StartReloader reloads the policy on cfg.ReloadSchedule and, with
// cfg.WatchRates, whenever the policy file changes. The returned function
// stops the schedule.
func (h *Handler) StartReloader(cfg *Config) (stop func(), err error) {
	stop = func() {}
	if h.source == nil {
		return stop, nil
	}

	if cfg.WatchRates {
		h.source.Watch(func(c *config.Configuration, err error) {
			if err == nil {
				err = h.apply(c)
			}
			h.metrics.Reloaded(err)
			if err != nil {
				h.logger.Error("failed to reload rate policy on change",
					zap.String("op", "server.StartReloader"),
					zap.Error(err),
				)
			}
		})
	}

	if cfg.ReloadSchedule == "" {
		return stop, nil
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReloadSchedule, func() {
		if err := h.Reload(); err != nil {
			h.logger.Error("scheduled rate policy reload failed",
				zap.String("op", "server.StartReloader"),
				zap.Error(err),
			)
		}
	}); err != nil {
		return stop, fmt.Errorf("invalid reload schedule %q: %w", cfg.ReloadSchedule, err)
	}
	scheduler.Start()
	return func() { <-scheduler.Stop().Done() }, nil
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReload"
	if err := h.Reload(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoSource) {
			status = http.StatusConflict
		}
		h.respondErrorWithOp(w, r, status, errorResponse{Error: err.Error(), Kind: "reload_failed"}, op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "reloaded",
		"schemes": h.Engine().Table().Schemes(),
	})
}
