package parking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Vehicle is the core's view of a registered vehicle.
type Vehicle struct {
	Plate      string
	ClientID   string
	Subscriber bool
}

// VehicleDirectory resolves plates to registered vehicles. The client and
// vehicle catalog lives outside the core; the lot only consults it.
type VehicleDirectory interface {
	VehicleByPlate(plate string) (Vehicle, bool)
}

// Lot owns a set of spots and the full session history, open and closed.
// A single RWMutex serializes mutations so the lot can be embedded in a
// concurrent server; report queries take the read lock.
type Lot struct {
	mu       sync.RWMutex
	name     string
	spots    []*Spot
	sessions []*Session
	vehicles VehicleDirectory

	hourlyPolicy     BillingPolicy
	subscriberPolicy BillingPolicy
}

// NewLot provisions a lot with the given initial capacity.
func NewLot(name string, capacity int, vehicles VehicleDirectory) (*Lot, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	l := &Lot{
		name:             name,
		vehicles:         vehicles,
		hourlyPolicy:     DefaultHourlyPolicy(),
		subscriberPolicy: DefaultSubscriberPolicy(),
	}
	l.appendSpots(capacity)
	return l, nil
}

// UsePolicies swaps the billing tiers, e.g. for a lot with different rates.
func (l *Lot) UsePolicies(hourly, subscriber BillingPolicy) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if hourly != nil {
		l.hourlyPolicy = hourly
	}
	if subscriber != nil {
		l.subscriberPolicy = subscriber
	}
}

func (l *Lot) appendSpots(n int) {
	for i := 0; i < n; i++ {
		l.spots = append(l.spots, newSpot(len(l.spots)+1))
	}
}

// Name returns the lot identifier.
func (l *Lot) Name() string { return l.name }

// Capacity returns the current number of spots.
func (l *Lot) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.spots)
}

// FreeSpots counts currently unoccupied spots.
func (l *Lot) FreeSpots() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	free := 0
	for _, s := range l.spots {
		if !s.Occupied() {
			free++
		}
	}
	return free
}

// GrantSpots appends n new free spots to the lot.
func (l *Lot) GrantSpots(n int) error {
	if n <= 0 {
		return ErrInvalidCapacity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendSpots(n)
	return nil
}

// CheckIn opens a session for the vehicle on the first free spot, scanning
// in ascending spot order.
func (l *Lot) CheckIn(plate string, now time.Time) (*Session, error) {
	vehicle, ok := l.vehicles.VehicleByPlate(plate)
	if !ok {
		return nil, ErrVehicleNotRegistered
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.openSessionLocked(plate) != nil {
		return nil, ErrVehicleAlreadyParked
	}

	for _, spot := range l.spots {
		if spot.Occupied() {
			continue
		}
		session, err := openSession(uuid.NewString(), vehicle, spot, l.policyFor(vehicle), now)
		if err != nil {
			return nil, err
		}
		l.sessions = append(l.sessions, session)
		return session, nil
	}
	return nil, ErrLotFull
}

// CheckOut closes the vehicle's open session and returns the final fee.
// Zero is a valid fee; absence of an open session is reported via the error.
func (l *Lot) CheckOut(plate string, now time.Time) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session := l.openSessionLocked(plate)
	if session == nil {
		return 0, ErrVehicleNotParked
	}
	return session.Close(now)
}

// ContractService attaches an add-on service to the vehicle's open session
// and returns the service price.
func (l *Lot) ContractService(plate string, kind ServiceKind, now time.Time) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session := l.openSessionLocked(plate)
	if session == nil {
		return 0, ErrVehicleNotParked
	}
	return session.AttachService(kind, now)
}

func (l *Lot) policyFor(v Vehicle) BillingPolicy {
	if v.Subscriber {
		return l.subscriberPolicy
	}
	return l.hourlyPolicy
}

func (l *Lot) openSessionLocked(plate string) *Session {
	for _, s := range l.sessions {
		if s.Open() && s.Plate() == plate {
			return s
		}
	}
	return nil
}

// Sessions returns a snapshot of the session history in creation order.
func (l *Lot) Sessions() []*Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// OpenSessions counts sessions that have not been closed yet.
func (l *Lot) OpenSessions() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	open := 0
	for _, s := range l.sessions {
		if s.Open() {
			open++
		}
	}
	return open
}

// TotalRevenue sums the fees of all closed sessions.
func (l *Lot) TotalRevenue() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return totalRevenue(l.sessions)
}

// RevenueInMonth sums closed-session fees for sessions touching the month.
func (l *Lot) RevenueInMonth(month time.Month) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return revenueInMonth(l.sessions, month)
}

// AverageFeePerUse returns total revenue divided by the number of closed
// sessions, or zero when none have closed.
func (l *Lot) AverageFeePerUse() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return averageFeePerUse(l.sessions)
}

// TopClients ranks clients by summed closed-session fees in the month,
// descending, ties broken by client id, and returns at most n entries.
func (l *Lot) TopClients(month time.Month, n int) []ClientRevenue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return topClients(l.sessions, month, n)
}

// AverageMonthlyUsageForSubscribers returns the average number of sessions
// in the given month per subscriber client seen in the lot's history, or
// zero when no subscriber has ever parked.
func (l *Lot) AverageMonthlyUsageForSubscribers(month time.Month) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return subscriberUsageAverage(l.sessions, month)
}
