// Package currency converts money between currency codes through a single
// base currency using exact decimal arithmetic.
package currency

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Base is the pivot currency. Every rate is expressed as units of a currency
// per one unit of Base.
const Base = "USD"

// ErrInvalidRate is returned by SetRate for zero or negative rates.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// seed is the default rate table. These are fixture values, not a live feed.
var seed = []struct {
	code string
	rate string
}{
	{"USD", "1.0"},
	{"EUR", "0.85"},
	{"GBP", "0.73"},
	{"JPY", "110.0"},
	{"CAD", "1.25"},
	{"AUD", "1.35"},
}

// DefaultRates returns a fresh copy of the default rate table.
func DefaultRates() map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(seed))
	for _, s := range seed {
		rates[s.code] = decimal.RequireFromString(s.rate)
	}
	return rates
}

// Converter holds a mutable rate table. It is safe for concurrent use.
type Converter struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
	order []string // codes in insertion order, for stable listing
}

// NewConverter creates a Converter seeded with the default rate table.
func NewConverter() *Converter {
	c := &Converter{rates: make(map[string]decimal.Decimal, len(seed))}
	for _, s := range seed {
		c.rates[s.code] = decimal.RequireFromString(s.rate)
		c.order = append(c.order, s.code)
	}
	return c
}

// Convert converts amount from one currency to another via Base:
// amount / rate[from] * rate[to].
// If from == to, or either code is unknown, amount is returned unchanged.
//
// The division is carried to decimal.DivisionPrecision places, so converting
// there and back between two non-Base codes can differ from the input in the
// last digits (100 EUR to GBP and back gives 100.00000000000000003). Round
// the result, e.g. with Round(8) or StringFixed(2), before comparing or
// displaying it.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}

	c.mu.RLock()
	fromRate, okFrom := c.rates[from]
	toRate, okTo := c.rates[to]
	c.mu.RUnlock()

	if !okFrom || !okTo || fromRate.IsZero() {
		return amount
	}
	return amount.Div(fromRate).Mul(toRate)
}

// Currencies returns every known code in insertion order.
func (c *Converter) Currencies() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Rate returns the rate for code and whether it is known.
func (c *Converter) Rate(code string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.rates[code]
	return r, ok
}

// SetRate inserts code or overwrites its rate.
func (c *Converter) SetRate(code string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rates[code]; !ok {
		c.order = append(c.order, code)
	}
	c.rates[code] = rate
	return nil
}

// Rates returns a copy of the rate table.
func (c *Converter) Rates() map[string]decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]decimal.Decimal, len(c.rates))
	for k, v := range c.rates {
		out[k] = v
	}
	return out
}

// Load merges persisted rates over the default table. Codes the persisted
// table lacks keep their default rate, so Base is always known.
// Non-positive rates are dropped. Seed codes keep their seed position; other
// codes follow in sorted order.
func (c *Converter) Load(rates map[string]decimal.Decimal) {
	merged := DefaultRates()
	for code, rate := range rates {
		if rate.IsPositive() {
			merged[code] = rate
		}
	}

	order := make([]string, 0, len(merged))
	for _, s := range seed {
		order = append(order, s.code)
	}
	var extra []string
	for code := range merged {
		if !isSeed(code) {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = merged
	c.order = order
}

func isSeed(code string) bool {
	for _, s := range seed {
		if s.code == code {
			return true
		}
	}
	return false
}
