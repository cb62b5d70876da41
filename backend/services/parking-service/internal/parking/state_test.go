package parking

import (
	"errors"
	"testing"
	"time"
)

func TestStateRoundTrip(t *testing.T) {
	directory := testDirectory()
	registry := NewRegistry(directory)

	lot, err := registry.CreateLot("centro", 3)
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}
	entry := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

	// One closed session with a service, one still open.
	if _, err := lot.CheckIn("AAA0001", entry); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if _, err := lot.ContractService("AAA0001", ServiceWash, entry.Add(time.Hour)); err != nil {
		t.Fatalf("contract service: %v", err)
	}
	closedFee, err := lot.CheckOut("AAA0001", entry.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if _, err := lot.CheckIn("BBB0002", entry.Add(3*time.Hour)); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	restored, err := RestoreRegistry(registry.State(), directory)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	restoredLot, ok := restored.Lot("centro")
	if !ok {
		t.Fatalf("restored registry misses lot")
	}
	if restoredLot.Capacity() != 3 {
		t.Fatalf("capacity = %d, want 3", restoredLot.Capacity())
	}
	if restoredLot.FreeSpots() != 2 {
		t.Fatalf("free spots = %d, want 2", restoredLot.FreeSpots())
	}
	if restoredLot.OpenSessions() != 1 {
		t.Fatalf("open sessions = %d, want 1", restoredLot.OpenSessions())
	}
	if got := restoredLot.TotalRevenue(); got != closedFee {
		t.Fatalf("revenue = %v, want %v", got, closedFee)
	}

	sessions := restoredLot.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	closed := sessions[0]
	if closed.Open() {
		t.Fatalf("closed session restored as open")
	}
	if contract, ok := closed.Contract(); !ok || contract.Kind != ServiceWash {
		t.Fatalf("service contract lost in round trip")
	}

	// The restored open session still owns its spot: the same vehicle cannot
	// check in again, and checkout works.
	if _, err := restored.Lots()[0].CheckIn("BBB0002", entry.Add(4*time.Hour)); !errors.Is(err, ErrVehicleAlreadyParked) {
		t.Fatalf("got %v, want ErrVehicleAlreadyParked", err)
	}
	if _, err := restoredLot.CheckOut("BBB0002", entry.Add(4*time.Hour)); err != nil {
		t.Fatalf("check-out after restore: %v", err)
	}
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	directory := testDirectory()
	entry := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		state LotState
	}{
		{
			name: "unknown spot",
			state: LotState{Name: "bad", Capacity: 1, Sessions: []SessionState{
				{ID: "s-1", Plate: "AAA0001", ClientID: "ana", SpotID: 9, Entry: entry},
			}},
		},
		{
			name: "spot held twice",
			state: LotState{Name: "bad", Capacity: 1, Sessions: []SessionState{
				{ID: "s-1", Plate: "AAA0001", ClientID: "ana", SpotID: 1, Entry: entry},
				{ID: "s-2", Plate: "BBB0002", ClientID: "bruno", SpotID: 1, Entry: entry},
			}},
		},
		{
			name: "unknown service kind",
			state: LotState{Name: "bad", Capacity: 1, Sessions: []SessionState{
				{ID: "s-1", Plate: "AAA0001", ClientID: "ana", SpotID: 1, Entry: entry,
					Service: func() *ServiceKind { k := ServiceKind("detailing"); return &k }()},
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RestoreRegistry([]LotState{tc.state}, directory); err == nil {
				t.Fatalf("restore accepted corrupt state")
			}
		})
	}
}
