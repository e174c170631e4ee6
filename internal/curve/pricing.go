// =============================
// File: internal/curve/pricing.go
// =============================
package curve

// Pure trade economics over a linear curve: price(supply) = InitialPrice +
// Slope*supply. Costs and proceeds integrate the price over the traded range
// by averaging the boundary prices, which is exact for a linear function.
// Charging the instantaneous price times the amount would overcharge buyers
// (or undercharge sellers) on any trade larger than one unit.

// PriceAt returns the instantaneous unit price at the given supply.
func PriceAt(s *State, supply uint64) (uint64, error) {
	rise, err := CheckedMul(s.Slope, supply)
	if err != nil {
		return 0, err
	}
	return CheckedAdd(s.InitialPrice, rise)
}

// SpotPrice returns the instantaneous unit price at the current supply.
func SpotPrice(s *State) (uint64, error) {
	return PriceAt(s, s.TotalSupply)
}

// CostToBuy returns the reserve cost of minting amount units on top of the
// current supply: amount times the average of the boundary prices over
// [supply, supply+amount].
func CostToBuy(s *State, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	after, err := CheckedAdd(s.TotalSupply, amount)
	if err != nil {
		return 0, err
	}
	return rangeCost(s, s.TotalSupply, after, amount)
}

// ProceedsFromSell returns the reserve released by burning amount units:
// amount times the average of the boundary prices over [supply-amount, supply].
// Selling the entire supply is valid and drains the curve back to its
// initial price.
func ProceedsFromSell(s *State, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if amount > s.TotalSupply {
		return 0, ErrInsufficientSupply
	}
	return rangeCost(s, s.TotalSupply-amount, s.TotalSupply, amount)
}

func rangeCost(s *State, lo, hi, amount uint64) (uint64, error) {
	pLo, err := PriceAt(s, lo)
	if err != nil {
		return 0, err
	}
	pHi, err := PriceAt(s, hi)
	if err != nil {
		return 0, err
	}
	sum, err := CheckedAdd(pLo, pHi)
	if err != nil {
		return 0, err
	}
	avg, err := CheckedDiv(sum, 2)
	if err != nil {
		return 0, err
	}
	return CheckedMul(avg, amount)
}
