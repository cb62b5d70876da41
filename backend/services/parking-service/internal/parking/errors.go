package parking

import "errors"

// Business errors returned by the core. All are expected, recoverable
// conditions except ErrSpotReleaseInconsistent, which signals an invariant
// breach and is logged as fatal by the embedding layer.
var (
	ErrSpotUnavailable         = errors.New("parking: spot unavailable")
	ErrLotFull                 = errors.New("parking: no free spot")
	ErrVehicleNotRegistered    = errors.New("parking: vehicle not registered")
	ErrVehicleNotParked        = errors.New("parking: vehicle not parked")
	ErrVehicleAlreadyParked    = errors.New("parking: vehicle already parked")
	ErrSessionClosed           = errors.New("parking: session already closed")
	ErrServiceAttached         = errors.New("parking: service already contracted")
	ErrMinimumStayNotMet       = errors.New("parking: minimum stay not met")
	ErrInvalidInterval         = errors.New("parking: exit must be after entry")
	ErrInvalidCapacity         = errors.New("parking: spot count must be positive")
	ErrUnknownService          = errors.New("parking: unknown service kind")
	ErrLotExists               = errors.New("parking: lot already exists")
	ErrLotNotFound             = errors.New("parking: lot not found")
	ErrSpotReleaseInconsistent = errors.New("parking: released spot was already free")
)
