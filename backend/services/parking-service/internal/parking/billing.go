package parking

import "time"

// Pricing constants for the default policies.
const (
	DefaultFraction    = 15 * time.Minute
	DefaultFractionFee = 4.0
	DefaultMaximumFee  = 50.0
	DefaultMonthlyRate = 500.0
)

// BillingPolicy converts an occupancy interval into a time-based fee.
// Alternate pricing tiers plug in here without touching the session logic.
type BillingPolicy interface {
	Fee(entry, exit time.Time) (float64, error)
}

// FractionPolicy bills per started fraction of the stay, capped at a maximum.
// Any partial fraction counts as a full one.
type FractionPolicy struct {
	Fraction    time.Duration
	FractionFee float64
	MaximumFee  float64
}

// DefaultHourlyPolicy returns the quarter-hour policy used for hourly clients.
func DefaultHourlyPolicy() FractionPolicy {
	return FractionPolicy{
		Fraction:    DefaultFraction,
		FractionFee: DefaultFractionFee,
		MaximumFee:  DefaultMaximumFee,
	}
}

// Fee returns the capped per-fraction fee for the interval. Exit at or
// before entry fails with ErrInvalidInterval.
func (p FractionPolicy) Fee(entry, exit time.Time) (float64, error) {
	if !exit.After(entry) {
		return 0, ErrInvalidInterval
	}
	elapsed := exit.Sub(entry)
	units := elapsed / p.Fraction
	if elapsed%p.Fraction != 0 {
		units++
	}
	fee := float64(units) * p.FractionFee
	if fee > p.MaximumFee {
		fee = p.MaximumFee
	}
	return fee, nil
}

// MonthlyFlatPolicy bills subscribers a recurring flat rate instead of a
// per-use fee; individual stays cost nothing.
type MonthlyFlatPolicy struct {
	Rate float64
}

// DefaultSubscriberPolicy returns the flat monthly tier.
func DefaultSubscriberPolicy() MonthlyFlatPolicy {
	return MonthlyFlatPolicy{Rate: DefaultMonthlyRate}
}

// Fee validates the interval and returns zero; the subscription rate is
// billed out of band.
func (p MonthlyFlatPolicy) Fee(entry, exit time.Time) (float64, error) {
	if !exit.After(entry) {
		return 0, ErrInvalidInterval
	}
	return 0, nil
}
