// Package prober runs the stored checks in the background and records each
// check's up/down state.
package prober

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"uptime-api/internal/config"
	"uptime-api/internal/model"
	"uptime-api/internal/storage"
)

// Prober defines the lifecycle of the background check runner.
type Prober interface {
	Start()
	Stop()
}

type prober struct {
	log    *zap.Logger
	cfg    *config.Config
	store  *storage.Store
	ticker *time.Ticker
	quit   chan struct{}
}

// New initializes a new Prober instance.
func New(cfg *config.Config, store *storage.Store, logger *zap.Logger) Prober {
	return &prober{
		log:    logger,
		cfg:    cfg,
		store:  store,
		quit:   make(chan struct{}),
		ticker: time.NewTicker(cfg.ProbeInterval),
	}
}

// Start runs the periodic probe loop until Stop is called.
func (p *prober) Start() {
	for {
		select {
		case <-p.ticker.C:
			p.runAll(context.Background())
		case <-p.quit:
			p.ticker.Stop()
			return
		}
	}
}

// Stop signals the prober to shut down.
func (p *prober) Stop() {
	close(p.quit)
}

// runAll performs one pass over every stored check. A failing check never
// stops the pass; failures are logged and the next check proceeds.
func (p *prober) runAll(ctx context.Context) {
	ids, err := p.store.List(ctx, model.CollectionChecks)
	if err != nil {
		p.log.Error("failed to list checks", zap.Error(err))
		return
	}

	for _, id := range ids {
		var check model.Check
		if err := p.store.Read(ctx, model.CollectionChecks, id, &check); err != nil {
			p.log.Error("failed to read check", zap.String("id", id), zap.Error(err))
			continue
		}

		state := p.perform(ctx, check)
		if state != check.State && check.State != "" {
			p.log.Info("check changed state",
				zap.String("id", check.ID),
				zap.String("url", check.URL),
				zap.String("from", check.State),
				zap.String("to", state))
		}

		check.State = state
		check.LastChecked = time.Now().UnixMilli()
		if err := p.store.Update(ctx, model.CollectionChecks, id, check); err != nil {
			p.log.Error("failed to record check outcome", zap.String("id", id), zap.Error(err))
		}
	}
}

// perform issues the check's HTTP request and classifies the outcome. Up
// means the response status is one of the check's success codes; everything
// else, including transport errors and timeouts, is down.
func (p *prober) perform(ctx context.Context, check model.Check) string {
	timeout := time.Duration(check.TimeoutSeconds) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := fmt.Sprintf("%s://%s", check.Protocol, check.URL)
	req, err := http.NewRequestWithContext(reqCtx, normalizeMethod(check.Method), target, nil)
	if err != nil {
		p.log.Warn("invalid check target", zap.String("id", check.ID), zap.Error(err))
		return model.CheckStateDown
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return model.CheckStateDown
	}
	defer resp.Body.Close()

	for _, code := range check.SuccessCodes {
		if resp.StatusCode == code {
			return model.CheckStateUp
		}
	}
	return model.CheckStateDown
}

func normalizeMethod(method string) string {
	switch method {
	case "post":
		return http.MethodPost
	case "put":
		return http.MethodPut
	case "delete":
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}
