package parking

import (
	"fmt"
	"time"
)

// State types describe the core's entire mutable state for the persistence
// collaborator. Snapshot then restore must reproduce an identical registry:
// same spots, same open/closed sessions, same fees. The storage format and
// medium belong to the collaborator, not to the core.

// SessionState is the serializable form of one session.
type SessionState struct {
	ID         string       `json:"id"`
	Plate      string       `json:"plate"`
	ClientID   string       `json:"client_id"`
	Subscriber bool         `json:"subscriber"`
	SpotID     int          `json:"spot_id"`
	Entry      time.Time    `json:"entry"`
	Exit       *time.Time   `json:"exit,omitempty"`
	Service    *ServiceKind `json:"service,omitempty"`
	Fee        float64      `json:"fee"`
}

// LotState is the serializable form of one lot.
type LotState struct {
	Name     string         `json:"name"`
	Capacity int            `json:"capacity"`
	Sessions []SessionState `json:"sessions"`
}

// State captures a lot under its read lock.
func (l *Lot) State() LotState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	state := LotState{
		Name:     l.name,
		Capacity: len(l.spots),
		Sessions: make([]SessionState, 0, len(l.sessions)),
	}
	for _, s := range l.sessions {
		ss := SessionState{
			ID:         s.id,
			Plate:      s.plate,
			ClientID:   s.clientID,
			Subscriber: s.subscriber,
			SpotID:     s.spot.ID(),
			Entry:      s.entry,
			Fee:        s.fee,
		}
		if !s.exit.IsZero() {
			exit := s.exit
			ss.Exit = &exit
		}
		if s.contract != nil {
			kind := s.contract.Kind
			ss.Service = &kind
		}
		state.Sessions = append(state.Sessions, ss)
	}
	return state
}

// State captures every lot in creation order.
func (r *Registry) State() []LotState {
	lots := r.Lots()
	out := make([]LotState, 0, len(lots))
	for _, lot := range lots {
		out = append(out, lot.State())
	}
	return out
}

// RestoreRegistry rebuilds a registry from captured state. Open sessions
// re-occupy their spots; any inconsistency in the captured state (unknown
// spot, doubly held spot, unknown service kind) fails the restore.
func RestoreRegistry(states []LotState, vehicles VehicleDirectory) (*Registry, error) {
	registry := NewRegistry(vehicles)
	for _, ls := range states {
		lot, err := registry.CreateLot(ls.Name, ls.Capacity)
		if err != nil {
			return nil, fmt.Errorf("restore lot %q: %w", ls.Name, err)
		}
		if err := lot.restoreSessions(ls.Sessions); err != nil {
			return nil, fmt.Errorf("restore lot %q: %w", ls.Name, err)
		}
	}
	return registry, nil
}

func (l *Lot) restoreSessions(states []SessionState) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ss := range states {
		if ss.SpotID < 1 || ss.SpotID > len(l.spots) {
			return fmt.Errorf("session %s: unknown spot %d", ss.ID, ss.SpotID)
		}
		spot := l.spots[ss.SpotID-1]

		session := &Session{
			id:         ss.ID,
			plate:      ss.Plate,
			clientID:   ss.ClientID,
			subscriber: ss.Subscriber,
			spot:       spot,
			entry:      ss.Entry,
			fee:        ss.Fee,
		}
		session.policy = l.policyFor(Vehicle{Subscriber: ss.Subscriber})

		if ss.Service != nil {
			contract, ok := ContractFor(*ss.Service)
			if !ok {
				return fmt.Errorf("session %s: unknown service kind %q", ss.ID, *ss.Service)
			}
			session.contract = &contract
		}

		if ss.Exit != nil {
			session.exit = *ss.Exit
		} else if !spot.TryOccupy() {
			return fmt.Errorf("session %s: spot %d held twice", ss.ID, ss.SpotID)
		}

		l.sessions = append(l.sessions, session)
	}
	return nil
}
