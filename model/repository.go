package model

import "context"

// Repository persists trained model snapshots, one per horizon.
type Repository interface {
	Get(ctx context.Context, horizon int) (*Snapshot, error)
	Put(ctx context.Context, snapshot *Snapshot) error

	IsReady() bool
	Close() error
}
