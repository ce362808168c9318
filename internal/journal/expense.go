package journal

import (
	"sync"

	"github.com/shopspring/decimal"

	"vj-go/internal/currency"
	"vj-go/internal/model"
)

// ExpenseStore is the in-memory collection of expenses together with the
// exchange-rate table used to roll them up.
// This implementation is safe for concurrent use.
type ExpenseStore struct {
	mu        sync.RWMutex
	expenses  []model.Expense
	nextID    int
	converter *currency.Converter
}

var _ ExpenseSource = (*ExpenseStore)(nil)

// NewExpenseStore creates an empty store. A nil converter gets the default
// rate table.
func NewExpenseStore(converter *currency.Converter) *ExpenseStore {
	if converter == nil {
		converter = currency.NewConverter()
	}
	return &ExpenseStore{nextID: 1, converter: converter}
}

// Add records an expense. Any ID on e is ignored; the stored copy is returned.
func (s *ExpenseStore) Add(e model.Expense) model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	s.expenses = append(s.expenses, e)
	return e
}

// Get returns the expense with the given ID.
func (s *ExpenseStore) Get(id int) (model.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.expenses[i], true
	}
	return model.Expense{}, false
}

// ForTrip returns the trip's expenses in stored order.
func (s *ExpenseStore) ForTrip(tripID int) []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Expense
	for _, e := range s.expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out
}

// Update overwrites amount, description, currency, date and category of the
// expense identified by e.ID. The trip is never changed.
func (s *ExpenseStore) Update(e model.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(e.ID)
	if i < 0 {
		return false
	}
	cur := &s.expenses[i]
	cur.Amount = e.Amount
	cur.Description = e.Description
	cur.Currency = e.Currency
	cur.Date = e.Date
	cur.Category = e.Category
	return true
}

// Delete removes an expense.
func (s *ExpenseStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
	return true
}

// DeleteByTrip removes every expense of a trip and returns how many were removed.
func (s *ExpenseStore) DeleteByTrip(tripID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.TripID != tripID {
			kept = append(kept, e)
		}
	}
	removed := len(s.expenses) - len(kept)
	s.expenses = kept
	return removed
}

// Total sums the trip's expenses converted into target, in stored order.
func (s *ExpenseStore) Total(tripID int, target string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.ForTrip(tripID) {
		total = total.Add(s.converter.Convert(e.Amount, e.Currency, target))
	}
	return total
}

// ByCategory sums the trip's expenses converted into target, grouped by the
// exact category string.
func (s *ExpenseStore) ByCategory(tripID int, target string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range s.ForTrip(tripID) {
		sum, ok := totals[e.Category]
		if !ok {
			sum = decimal.Zero
		}
		totals[e.Category] = sum.Add(s.converter.Convert(e.Amount, e.Currency, target))
	}
	return totals
}

// Convert converts amount between currency codes using the store's rate table.
func (s *ExpenseStore) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return s.converter.Convert(amount, from, to)
}

// Currencies lists the known currency codes.
func (s *ExpenseStore) Currencies() []string {
	return s.converter.Currencies()
}

// SetRate inserts or overwrites an exchange rate.
func (s *ExpenseStore) SetRate(code string, rate decimal.Decimal) error {
	return s.converter.SetRate(code, rate)
}

// Rates returns a copy of the exchange-rate table.
func (s *ExpenseStore) Rates() map[string]decimal.Decimal {
	return s.converter.Rates()
}

// All returns every expense, for persistence.
func (s *ExpenseStore) All() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Replace swaps in a loaded collection and recovers the ID counter.
// The rate table is reset to the defaults with rates merged over it.
func (s *ExpenseStore) Replace(expenses []model.Expense, rates map[string]decimal.Decimal) {
	s.converter.Load(rates)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = make([]model.Expense, len(expenses))
	copy(s.expenses, expenses)
	s.nextID = nextIDAfter(s.expenses, func(e model.Expense) int { return e.ID })
}

func (s *ExpenseStore) indexOf(id int) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}
	return -1
}
