package catalog

import (
	"errors"
	"testing"
)

func TestRegisterClient(t *testing.T) {
	c := New()

	if err := c.RegisterClient(Client{ID: "ana", Name: "Ana"}); err != nil {
		t.Fatalf("register client: %v", err)
	}
	if err := c.RegisterClient(Client{ID: "ana", Name: "Other"}); !errors.Is(err, ErrClientExists) {
		t.Fatalf("duplicate client: got %v, want ErrClientExists", err)
	}
	if err := c.RegisterClient(Client{ID: "  "}); !errors.Is(err, ErrInvalidClient) {
		t.Fatalf("blank id: got %v, want ErrInvalidClient", err)
	}

	if client, ok := c.Client("ana"); !ok || client.Name != "Ana" {
		t.Fatalf("lookup failed: %+v %v", client, ok)
	}
}

func TestRegisterVehicle(t *testing.T) {
	c := New()
	if err := c.RegisterClient(Client{ID: "ana", Name: "Ana"}); err != nil {
		t.Fatalf("register client: %v", err)
	}

	vehicle := Vehicle{Plate: "AAA0001", ClientID: "ana", Usage: UsageHourly}
	if err := c.RegisterVehicle(vehicle); err != nil {
		t.Fatalf("register vehicle: %v", err)
	}
	if err := c.RegisterVehicle(vehicle); !errors.Is(err, ErrVehicleExists) {
		t.Fatalf("duplicate plate: got %v, want ErrVehicleExists", err)
	}
	if err := c.RegisterVehicle(Vehicle{Plate: "BBB0002", ClientID: "ghost", Usage: UsageHourly}); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("unknown client: got %v, want ErrClientNotFound", err)
	}
	if err := c.RegisterVehicle(Vehicle{Plate: "CCC0003", ClientID: "ana", Usage: UsageType("daily")}); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("bad usage: got %v, want ErrInvalidUsage", err)
	}
}

func TestVehicleByPlate(t *testing.T) {
	c := New()
	if err := c.RegisterClient(Client{ID: "carla", Name: "Carla"}); err != nil {
		t.Fatalf("register client: %v", err)
	}
	if err := c.RegisterVehicle(Vehicle{Plate: "CCC0003", ClientID: "carla", Usage: UsageSubscriber}); err != nil {
		t.Fatalf("register vehicle: %v", err)
	}

	v, ok := c.VehicleByPlate("CCC0003")
	if !ok {
		t.Fatalf("vehicle not found")
	}
	if v.ClientID != "carla" || !v.Subscriber {
		t.Fatalf("unexpected directory view: %+v", v)
	}
	if _, ok := c.VehicleByPlate("ZZZ9999"); ok {
		t.Fatalf("unknown plate resolved")
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := New()
	if err := c.RegisterClient(Client{ID: "ana", Name: "Ana"}); err != nil {
		t.Fatalf("register client: %v", err)
	}
	if err := c.RegisterClient(Client{ID: "bruno", Name: "Bruno"}); err != nil {
		t.Fatalf("register client: %v", err)
	}
	if err := c.RegisterVehicle(Vehicle{Plate: "AAA0001", ClientID: "ana", Usage: UsageHourly}); err != nil {
		t.Fatalf("register vehicle: %v", err)
	}

	restored, err := Restore(c.State())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	clients := restored.Clients()
	if len(clients) != 2 || clients[0].ID != "ana" || clients[1].ID != "bruno" {
		t.Fatalf("clients lost order or content: %+v", clients)
	}
	if _, ok := restored.VehicleByPlate("AAA0001"); !ok {
		t.Fatalf("vehicle lost in round trip")
	}
}
