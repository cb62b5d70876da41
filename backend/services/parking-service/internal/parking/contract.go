package parking

import "time"

// ServiceKind identifies an add-on service billable on top of the parking fee.
type ServiceKind string

const (
	ServiceValet  ServiceKind = "valet"
	ServiceWash   ServiceKind = "wash"
	ServicePolish ServiceKind = "polish"
)

// ServiceContract is an immutable catalog entry: a flat price gated by a
// minimum dwell time.
type ServiceContract struct {
	Kind        ServiceKind
	MinimumStay time.Duration
	Price       float64
}

// EligibleFor reports whether the elapsed dwell time satisfies the
// contract's minimum stay.
func (c ServiceContract) EligibleFor(elapsed time.Duration) bool {
	return elapsed >= c.MinimumStay
}

var serviceCatalog = map[ServiceKind]ServiceContract{
	ServiceValet:  {Kind: ServiceValet, MinimumStay: 0, Price: 5.0},
	ServiceWash:   {Kind: ServiceWash, MinimumStay: time.Hour, Price: 20.0},
	ServicePolish: {Kind: ServicePolish, MinimumStay: 2 * time.Hour, Price: 45.0},
}

// ContractFor returns the catalog entry for the given kind.
func ContractFor(kind ServiceKind) (ServiceContract, bool) {
	c, ok := serviceCatalog[kind]
	return c, ok
}
