package parking

// Spot is a single occupiable parking position. It carries no locking of its
// own; the owning Lot serializes access.
type Spot struct {
	id       int
	occupied bool
}

func newSpot(id int) *Spot {
	return &Spot{id: id}
}

// ID returns the spot's position within the lot, starting at 1.
func (s *Spot) ID() int {
	return s.id
}

// Occupied reports whether a session currently holds the spot.
func (s *Spot) Occupied() bool {
	return s.occupied
}

// TryOccupy marks the spot occupied. It returns false without side effect
// when the spot is already taken.
func (s *Spot) TryOccupy() bool {
	if s.occupied {
		return false
	}
	s.occupied = true
	return true
}

// Release frees the spot. A false return means the spot was already free,
// which the caller must treat as a consistency violation.
func (s *Spot) Release() bool {
	if !s.occupied {
		return false
	}
	s.occupied = false
	return true
}
