package parking

import "time"

// Session is one occupancy episode: it holds its spot from entry until
// checkout, may carry at most one service contract, and computes its final
// fee exactly once when closed. Access is serialized by the owning Lot.
type Session struct {
	id         string
	plate      string
	clientID   string
	subscriber bool
	spot       *Spot
	policy     BillingPolicy
	contract   *ServiceContract
	entry      time.Time
	exit       time.Time
	fee        float64
}

// openSession occupies the spot and starts a new open session. It fails
// with ErrSpotUnavailable when the spot is already taken.
func openSession(id string, v Vehicle, spot *Spot, policy BillingPolicy, now time.Time) (*Session, error) {
	if !spot.TryOccupy() {
		return nil, ErrSpotUnavailable
	}
	return &Session{
		id:         id,
		plate:      v.Plate,
		clientID:   v.ClientID,
		subscriber: v.Subscriber,
		spot:       spot,
		policy:     policy,
		entry:      now,
	}, nil
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Plate() string    { return s.plate }
func (s *Session) ClientID() string { return s.clientID }
func (s *Session) Subscriber() bool { return s.subscriber }
func (s *Session) SpotID() int      { return s.spot.ID() }
func (s *Session) Entry() time.Time { return s.entry }

// Exit returns the checkout time; the zero time while the session is open.
func (s *Session) Exit() time.Time { return s.exit }

// Open reports whether the session has not been closed yet.
func (s *Session) Open() bool { return s.exit.IsZero() }

// Fee returns the computed fee. It is zero until the session closes and
// immutable afterwards.
func (s *Session) Fee() float64 { return s.fee }

// Contract returns the attached service contract, if any.
func (s *Session) Contract() (ServiceContract, bool) {
	if s.contract == nil {
		return ServiceContract{}, false
	}
	return *s.contract, true
}

// AttachService contracts an add-on service for the stay. Allowed once,
// only while open, and only after the contract's minimum dwell time has
// elapsed. Returns the contract's flat price, charged additively at close.
func (s *Session) AttachService(kind ServiceKind, now time.Time) (float64, error) {
	if !s.Open() {
		return 0, ErrSessionClosed
	}
	if s.contract != nil {
		return 0, ErrServiceAttached
	}
	contract, ok := ContractFor(kind)
	if !ok {
		return 0, ErrUnknownService
	}
	if !contract.EligibleFor(now.Sub(s.entry)) {
		return 0, ErrMinimumStayNotMet
	}
	s.contract = &contract
	return contract.Price, nil
}

// Close finalizes the session: releases the spot, records the exit time and
// computes the fee as policy fee plus attached service price. Closing twice
// fails with ErrSessionClosed and leaves the fee untouched.
func (s *Session) Close(now time.Time) (float64, error) {
	if !s.Open() {
		return 0, ErrSessionClosed
	}
	fee, err := s.policy.Fee(s.entry, now)
	if err != nil {
		return 0, err
	}
	if !s.spot.Release() {
		return 0, ErrSpotReleaseInconsistent
	}
	if s.contract != nil {
		fee += s.contract.Price
	}
	s.exit = now
	s.fee = fee
	return fee, nil
}

// WithinMonth reports whether the session touches the given month: entry in
// that month, or exit in that month once closed. A stay spanning a month
// boundary counts toward both. Year is not considered, matching the
// monthly-report convention.
func (s *Session) WithinMonth(month time.Month) bool {
	if s.entry.Month() == month {
		return true
	}
	return !s.exit.IsZero() && s.exit.Month() == month
}
