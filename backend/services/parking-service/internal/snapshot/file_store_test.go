package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"parkhub/backend/services/parking-service/internal/catalog"
	"parkhub/backend/services/parking-service/internal/parking"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("load before save: got %v, want ErrNoSnapshot", err)
	}

	entry := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	state := State{
		SavedAt: entry.Add(12 * time.Hour),
		Catalog: catalog.State{
			Clients:  []catalog.Client{{ID: "ana", Name: "Ana"}},
			Vehicles: []catalog.Vehicle{{Plate: "AAA0001", ClientID: "ana", Usage: catalog.UsageHourly}},
		},
		Lots: []parking.LotState{
			{Name: "centro", Capacity: 2, Sessions: []parking.SessionState{
				{ID: "s-1", Plate: "AAA0001", ClientID: "ana", SpotID: 1, Entry: entry, Fee: 8.0},
			}},
		},
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.SavedAt.Equal(state.SavedAt) {
		t.Fatalf("saved_at = %v, want %v", loaded.SavedAt, state.SavedAt)
	}
	if len(loaded.Lots) != 1 || loaded.Lots[0].Name != "centro" {
		t.Fatalf("lots lost in round trip: %+v", loaded.Lots)
	}
	if len(loaded.Catalog.Vehicles) != 1 || loaded.Catalog.Vehicles[0].Plate != "AAA0001" {
		t.Fatalf("catalog lost in round trip: %+v", loaded.Catalog)
	}

	// Saving again overwrites in place.
	state.Lots[0].Capacity = 5
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	if loaded.Lots[0].Capacity != 5 {
		t.Fatalf("capacity = %d, want 5", loaded.Lots[0].Capacity)
	}
}
