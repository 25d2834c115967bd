package model

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

var ErrModelUnavailable = fmt.Errorf("no trained model available for this horizon")

// Registry holds the active snapshot per horizon, backed by a repository.
// Snapshots are loaded once at construction and swapped atomically after
// retraining, so serving never observes a half-replaced model.
type Registry struct {
	mu        sync.RWMutex
	snapshots map[int]*Snapshot

	repo   Repository
	logger *slog.Logger
}

// NewRegistry loads whatever snapshots the repository has for the given
// horizons. A horizon without a stored model is left empty, not an error;
// prediction for it fails with ErrModelUnavailable until trained.
func NewRegistry(ctx context.Context, repo Repository, horizons []int, logger *slog.Logger) *Registry {
	registry := &Registry{
		snapshots: make(map[int]*Snapshot, len(horizons)),
		repo:      repo,
		logger:    logger,
	}

	for _, horizon := range horizons {
		snapshot, err := repo.Get(ctx, horizon)
		if err != nil {
			logger.Warn("No stored model for horizon", "horizon", horizon, "error", err)
			continue
		}
		registry.snapshots[horizon] = snapshot
		logger.Info("Loaded model snapshot",
			"horizon", horizon, "trained_at", snapshot.TrainedAt, "metrics", snapshot.Metrics.String())
	}

	return registry
}

func (r *Registry) Get(horizon int) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[horizon]
	if !ok {
		return nil, ErrModelUnavailable
	}
	return snapshot, nil
}

// Replace persists the snapshot and then swaps it in. If persisting fails
// the in-memory model is left untouched.
func (r *Registry) Replace(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	if err := r.repo.Put(ctx, snapshot); err != nil {
		return err
	}

	r.mu.Lock()
	r.snapshots[snapshot.Horizon] = snapshot
	r.mu.Unlock()

	r.logger.Info("Replaced model snapshot", "horizon", snapshot.Horizon)
	return nil
}

// Horizons lists the horizons with a loaded model, ascending.
func (r *Registry) Horizons() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	horizons := make([]int, 0, len(r.snapshots))
	for horizon := range r.snapshots {
		horizons = append(horizons, horizon)
	}
	sort.Ints(horizons)
	return horizons
}

type HorizonStatus struct {
	Horizon   int       `json:"horizon"`
	TrainedAt time.Time `json:"trained_at"`
	Metrics   Metrics   `json:"metrics"`
}

// Status reports the loaded models for a status endpoint.
func (r *Registry) Status() []HorizonStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]HorizonStatus, 0, len(r.snapshots))
	for _, snapshot := range r.snapshots {
		statuses = append(statuses, HorizonStatus{
			Horizon:   snapshot.Horizon,
			TrainedAt: snapshot.TrainedAt,
			Metrics:   snapshot.Metrics,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Horizon < statuses[j].Horizon })
	return statuses
}
