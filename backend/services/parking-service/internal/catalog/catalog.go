package catalog

import (
	"errors"
	"strings"
	"sync"

	"parkhub/backend/services/parking-service/internal/parking"
)

// UsageType distinguishes per-use billing from the flat subscription tier.
type UsageType string

const (
	UsageHourly     UsageType = "hourly"
	UsageSubscriber UsageType = "subscriber"
)

var (
	ErrClientExists   = errors.New("catalog: client already registered")
	ErrClientNotFound = errors.New("catalog: client not found")
	ErrVehicleExists  = errors.New("catalog: vehicle already registered")
	ErrInvalidClient  = errors.New("catalog: client id is required")
	ErrInvalidPlate   = errors.New("catalog: vehicle plate is required")
	ErrInvalidUsage   = errors.New("catalog: unknown usage type")
)

// Client is a registered account holder.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vehicle belongs to exactly one client.
type Vehicle struct {
	Plate    string    `json:"plate"`
	ClientID string    `json:"client_id"`
	Usage    UsageType `json:"usage"`
}

// Catalog is the in-memory client and vehicle registry. It enforces
// identifier uniqueness before any lot sees a plate.
type Catalog struct {
	mu       sync.RWMutex
	clients  map[string]Client
	vehicles map[string]Vehicle
	order    []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		clients:  make(map[string]Client),
		vehicles: make(map[string]Vehicle),
	}
}

// RegisterClient adds a new client.
func (c *Catalog) RegisterClient(client Client) error {
	if strings.TrimSpace(client.ID) == "" {
		return ErrInvalidClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.clients[client.ID]; exists {
		return ErrClientExists
	}
	c.clients[client.ID] = client
	c.order = append(c.order, client.ID)
	return nil
}

// RegisterVehicle binds a plate to an existing client.
func (c *Catalog) RegisterVehicle(v Vehicle) error {
	if strings.TrimSpace(v.Plate) == "" {
		return ErrInvalidPlate
	}
	if v.Usage != UsageHourly && v.Usage != UsageSubscriber {
		return ErrInvalidUsage
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.clients[v.ClientID]; !exists {
		return ErrClientNotFound
	}
	if _, exists := c.vehicles[v.Plate]; exists {
		return ErrVehicleExists
	}
	c.vehicles[v.Plate] = v
	return nil
}

// Client returns the client with the given id.
func (c *Catalog) Client(id string) (Client, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	client, ok := c.clients[id]
	return client, ok
}

// Clients returns all clients in registration order.
func (c *Catalog) Clients() []Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Client, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clients[id])
	}
	return out
}

// VehicleByPlate implements parking.VehicleDirectory.
func (c *Catalog) VehicleByPlate(plate string) (parking.Vehicle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.vehicles[plate]
	if !ok {
		return parking.Vehicle{}, false
	}
	return parking.Vehicle{
		Plate:      v.Plate,
		ClientID:   v.ClientID,
		Subscriber: v.Usage == UsageSubscriber,
	}, true
}

// State is the serializable form of the catalog.
type State struct {
	Clients  []Client  `json:"clients"`
	Vehicles []Vehicle `json:"vehicles"`
}

// State captures the catalog under its read lock.
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := State{Clients: make([]Client, 0, len(c.order))}
	for _, id := range c.order {
		state.Clients = append(state.Clients, c.clients[id])
	}
	for _, v := range c.vehicles {
		state.Vehicles = append(state.Vehicles, v)
	}
	return state
}

// Restore rebuilds a catalog from captured state.
func Restore(state State) (*Catalog, error) {
	c := New()
	for _, client := range state.Clients {
		if err := c.RegisterClient(client); err != nil {
			return nil, err
		}
	}
	for _, v := range state.Vehicles {
		if err := c.RegisterVehicle(v); err != nil {
			return nil, err
		}
	}
	return c, nil
}
