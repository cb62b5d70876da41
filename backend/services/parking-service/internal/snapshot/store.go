package snapshot

import (
	"context"
	"errors"
	"time"

	"parkhub/backend/services/parking-service/internal/catalog"
	"parkhub/backend/services/parking-service/internal/parking"
)

// ErrNoSnapshot indicates no state has been persisted yet; callers start
// from a fresh state.
var ErrNoSnapshot = errors.New("snapshot: no snapshot stored")

// State is the full persisted state of the service: catalog plus every lot
// with its complete session history.
type State struct {
	SavedAt time.Time          `json:"saved_at"`
	Catalog catalog.State      `json:"catalog"`
	Lots    []parking.LotState `json:"lots"`
}

// Store persists and restores the service state as one opaque document.
type Store interface {
	Save(ctx context.Context, state State) error
	Load(ctx context.Context) (State, error)
}
