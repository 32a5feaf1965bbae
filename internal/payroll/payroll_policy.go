package payroll

import "github.com/shopspring/decimal"

// RatePolicy converts attendance work units into a base amount in the
// smallest currency unit.
type RatePolicy interface {
	BaseAmount(units decimal.Decimal) int64
}

// PerUnitRate pays Rate for every work unit, rounding half away from zero.
type PerUnitRate struct {
	Rate int64
}

func (p PerUnitRate) BaseAmount(units decimal.Decimal) int64 {
	return units.Mul(decimal.NewFromInt(p.Rate)).Round(0).IntPart()
}
