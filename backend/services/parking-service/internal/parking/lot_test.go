package parking

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type stubDirectory map[string]Vehicle

func (d stubDirectory) VehicleByPlate(plate string) (Vehicle, bool) {
	v, ok := d[plate]
	return v, ok
}

func testDirectory() stubDirectory {
	return stubDirectory{
		"AAA0001": {Plate: "AAA0001", ClientID: "ana"},
		"BBB0002": {Plate: "BBB0002", ClientID: "bruno"},
		"CCC0003": {Plate: "CCC0003", ClientID: "carla", Subscriber: true},
	}
}

func TestCheckInAssignsFirstFreeSpot(t *testing.T) {
	lot, err := NewLot("centro", 3, testDirectory())
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	first, err := lot.CheckIn("AAA0001", now)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if first.SpotID() != 1 {
		t.Fatalf("first check-in got spot %d, want 1", first.SpotID())
	}

	second, err := lot.CheckIn("BBB0002", now)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if second.SpotID() != 2 {
		t.Fatalf("second check-in got spot %d, want 2", second.SpotID())
	}

	// Freeing spot 1 makes it the next pick again.
	if _, err := lot.CheckOut("AAA0001", now.Add(time.Hour)); err != nil {
		t.Fatalf("check-out: %v", err)
	}
	third, err := lot.CheckIn("CCC0003", now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if third.SpotID() != 1 {
		t.Fatalf("reused spot %d, want 1", third.SpotID())
	}
}

func TestCheckInErrors(t *testing.T) {
	lot, err := NewLot("centro", 1, testDirectory())
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	if _, err := lot.CheckIn("ZZZ9999", now); !errors.Is(err, ErrVehicleNotRegistered) {
		t.Fatalf("unknown plate: got %v, want ErrVehicleNotRegistered", err)
	}

	if _, err := lot.CheckIn("AAA0001", now); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if _, err := lot.CheckIn("AAA0001", now); !errors.Is(err, ErrVehicleAlreadyParked) {
		t.Fatalf("double check-in: got %v, want ErrVehicleAlreadyParked", err)
	}
	if _, err := lot.CheckIn("BBB0002", now); !errors.Is(err, ErrLotFull) {
		t.Fatalf("full lot: got %v, want ErrLotFull", err)
	}
}

func TestCheckOutUnknownPlate(t *testing.T) {
	lot, err := NewLot("centro", 2, testDirectory())
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}

	if _, err := lot.CheckOut("AAA0001", time.Now()); !errors.Is(err, ErrVehicleNotParked) {
		t.Fatalf("got %v, want ErrVehicleNotParked", err)
	}
	if _, err := lot.ContractService("AAA0001", ServiceValet, time.Now()); !errors.Is(err, ErrVehicleNotParked) {
		t.Fatalf("contract service: got %v, want ErrVehicleNotParked", err)
	}
}

func TestOpenSessionsNeverExceedCapacity(t *testing.T) {
	directory := stubDirectory{}
	for i := 0; i < 10; i++ {
		plate := fmt.Sprintf("CAR%04d", i)
		directory[plate] = Vehicle{Plate: plate, ClientID: fmt.Sprintf("c%d", i)}
	}

	lot, err := NewLot("mini", 3, directory)
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}
	now := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	parked := 0
	for i := 0; i < 10; i++ {
		plate := fmt.Sprintf("CAR%04d", i)
		_, err := lot.CheckIn(plate, now.Add(time.Duration(i)*time.Minute))
		switch {
		case err == nil:
			parked++
		case errors.Is(err, ErrLotFull):
		default:
			t.Fatalf("check-in %s: %v", plate, err)
		}
		if open := lot.OpenSessions(); open > 3 {
			t.Fatalf("open sessions %d exceed capacity 3", open)
		}
	}
	if parked != 3 {
		t.Fatalf("parked %d vehicles, want 3", parked)
	}
}

func TestGrantSpots(t *testing.T) {
	lot, err := NewLot("centro", 1, testDirectory())
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	if err := lot.GrantSpots(0); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("grant 0: got %v, want ErrInvalidCapacity", err)
	}
	if err := lot.GrantSpots(-2); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("grant -2: got %v, want ErrInvalidCapacity", err)
	}

	if _, err := lot.CheckIn("AAA0001", now); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if _, err := lot.CheckIn("BBB0002", now); !errors.Is(err, ErrLotFull) {
		t.Fatalf("got %v, want ErrLotFull", err)
	}

	if err := lot.GrantSpots(2); err != nil {
		t.Fatalf("grant spots: %v", err)
	}
	if lot.Capacity() != 3 {
		t.Fatalf("capacity = %d, want 3", lot.Capacity())
	}
	session, err := lot.CheckIn("BBB0002", now)
	if err != nil {
		t.Fatalf("check-in after grant: %v", err)
	}
	if session.SpotID() != 2 {
		t.Fatalf("granted spot id = %d, want 2", session.SpotID())
	}
}

func TestNewLotRejectsInvalidCapacity(t *testing.T) {
	if _, err := NewLot("bad", 0, testDirectory()); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("got %v, want ErrInvalidCapacity", err)
	}
}

func TestSubscriberBilledByFlatPolicy(t *testing.T) {
	lot, err := NewLot("centro", 2, testDirectory())
	if err != nil {
		t.Fatalf("new lot: %v", err)
	}
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	if _, err := lot.CheckIn("CCC0003", now); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	fee, err := lot.CheckOut("CCC0003", now.Add(6*time.Hour))
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if fee != 0 {
		t.Fatalf("subscriber per-use fee = %v, want 0", fee)
	}
}
