package model

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spinframework/spin-go-sdk/v2/kv"
)

var (
	ErrKVStoreNotAvailable = fmt.Errorf("Spin KV store is not available")
)

func snapshotKey(horizon int) string {
	return fmt.Sprintf("glucose-model-%dmin", horizon)
}

type SpinKVRepository struct {
	db     *kv.Store
	logger *slog.Logger
}

func NewSpinKVRepository(storeName string, logger *slog.Logger) (*SpinKVRepository, error) {
	db, err := kv.OpenStore(storeName)
	if err != nil {
		logger.Error("Failed to open Spin KV store", "error", err)
		return nil, err
	}
	return &SpinKVRepository{
		db:     db,
		logger: logger,
	}, nil
}

// -- Component interface implementation --

func (r *SpinKVRepository) IsReady() bool {
	if r.logger == nil {
		return false
	}

	if r.db == nil {
		r.logger.Error("Spin KV store is not initialized")
		return false
	}

	return true
}

func (r *SpinKVRepository) Close() error {
	if r.db == nil {
		return nil // No action needed if db is not initialized
	}

	r.db.Close()
	r.logger.Info("Spin KV store closed successfully")
	return nil
}

// -- Repository interface implementation --

func (r *SpinKVRepository) Get(ctx context.Context, horizon int) (*Snapshot, error) {
	defer ctx.Done()

	if !r.IsReady() {
		return nil, ErrKVStoreNotAvailable
	}

	key := snapshotKey(horizon)
	jsonBlob, err := r.db.Get(key)
	if err != nil {
		r.logger.Error("Failed to get model snapshot", "key", key, "error", err)
		return nil, err
	}

	if jsonBlob == nil {
		r.logger.Warn("Model snapshot not found", "key", key)
		return nil, fmt.Errorf("no trained model for horizon %dmin", horizon)
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(jsonBlob, snapshot); err != nil {
		r.logger.Error("Failed to unmarshal model snapshot", "key", key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal snapshot for horizon %dmin: %w", horizon, err)
	}

	r.logger.Debug("Retrieved model snapshot", "key", key)
	return snapshot, nil
}

func (r *SpinKVRepository) Put(ctx context.Context, snapshot *Snapshot) error {
	defer ctx.Done()

	if !r.IsReady() {
		return ErrKVStoreNotAvailable
	}

	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	jsonBlob, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Error("Failed to marshal model snapshot", "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := snapshotKey(snapshot.Horizon)
	if err := r.db.Set(key, jsonBlob); err != nil {
		r.logger.Error("Failed to store model snapshot", "key", key, "error", err)
		return fmt.Errorf("failed to store snapshot for horizon %dmin: %w", snapshot.Horizon, err)
	}

	r.logger.Debug("Stored model snapshot", "key", key, "metrics", snapshot.Metrics.String())
	return nil
}
