package models

import (
	"fmt"
	"math/bits"
)

// AccountOverhead is the fixed per-allocation storage overhead, in bytes.
const AccountOverhead = 128

// maxAllocationSpace is the largest record the registry allocates.
const maxAllocationSpace = ContributorRecordSpace

// RentSchedule prices record allocation. The zero value charges nothing.
type RentSchedule struct {
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year"`
	ExemptionYears      uint64 `json:"exemption_years"`
}

// DefaultRentSchedule mirrors the ledger's rent-exemption pricing.
var DefaultRentSchedule = RentSchedule{LamportsPerByteYear: 3480, ExemptionYears: 2}

// Enabled reports whether allocations cost anything.
func (r RentSchedule) Enabled() bool {
	return r.LamportsPerByteYear > 0 && r.ExemptionYears > 0
}

// Validate rejects schedules whose price for the largest record does not
// fit in a uint64.
func (r RentSchedule) Validate() error {
	if _, ok := r.minimumBalance(maxAllocationSpace); !ok {
		return fmt.Errorf("rent schedule %d lamports/byte-year over %d years overflows for a %d byte record",
			r.LamportsPerByteYear, r.ExemptionYears, maxAllocationSpace)
	}
	return nil
}

// MinimumBalance is the cost of allocating space bytes. It saturates at the
// largest uint64 so an unvalidated schedule can never wrap to a cheap price.
func (r RentSchedule) MinimumBalance(space uint64) uint64 {
	cost, ok := r.minimumBalance(space)
	if !ok {
		return ^uint64(0)
	}
	return cost
}

func (r RentSchedule) minimumBalance(space uint64) (uint64, bool) {
	size, carry := bits.Add64(AccountOverhead, space, 0)
	if carry != 0 {
		return 0, false
	}
	hi, perYear := bits.Mul64(size, r.LamportsPerByteYear)
	if hi != 0 {
		return 0, false
	}
	hi, total := bits.Mul64(perYear, r.ExemptionYears)
	if hi != 0 {
		return 0, false
	}
	return total, true
}
