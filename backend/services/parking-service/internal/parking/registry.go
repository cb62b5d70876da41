package parking

import (
	"sort"
	"sync"
)

// Registry owns all lots, addressed by name. It replaces the fixed-size
// site table of earlier revisions with a dynamically sized collection.
type Registry struct {
	mu       sync.RWMutex
	lots     map[string]*Lot
	order    []string
	vehicles VehicleDirectory
}

// NewRegistry returns an empty registry whose lots resolve vehicles through
// the given directory.
func NewRegistry(vehicles VehicleDirectory) *Registry {
	return &Registry{
		lots:     make(map[string]*Lot),
		vehicles: vehicles,
	}
}

// CreateLot provisions a new named lot with the given capacity.
func (r *Registry) CreateLot(name string, capacity int) (*Lot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lots[name]; exists {
		return nil, ErrLotExists
	}
	lot, err := NewLot(name, capacity, r.vehicles)
	if err != nil {
		return nil, err
	}
	r.lots[name] = lot
	r.order = append(r.order, name)
	return lot, nil
}

// Lot returns the named lot.
func (r *Registry) Lot(name string) (*Lot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lot, ok := r.lots[name]
	return lot, ok
}

// Lots returns all lots in creation order.
func (r *Registry) Lots() []*Lot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Lot, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.lots[name])
	}
	return out
}

// LotRevenue is one row of the cross-lot revenue ranking.
type LotRevenue struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// RevenueByLot ranks all lots by total revenue, descending, ties broken by
// lot name.
func (r *Registry) RevenueByLot() []LotRevenue {
	lots := r.Lots()
	ranking := make([]LotRevenue, 0, len(lots))
	for _, lot := range lots {
		ranking = append(ranking, LotRevenue{Name: lot.Name(), Amount: lot.TotalRevenue()})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Amount != ranking[j].Amount {
			return ranking[i].Amount > ranking[j].Amount
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}
