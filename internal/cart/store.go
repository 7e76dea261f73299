package cart

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be a whole number")

// Line is one distinct catalog item in the cart. Name and UnitPrice are
// captured when the item is first added and never refreshed.
type Line struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Amount returns UnitPrice × Quantity
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds cart lines in insertion order.
// At most one line exists per item id and every quantity is at least 1.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

// NewStore creates an empty cart
func NewStore() *Store {
	return &Store{}
}

// indexOf must be called with mu held
func (s *Store) indexOf(id string) int {
	for i := range s.lines {
		if s.lines[i].ItemID == id {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart: an existing line gains one unit,
// otherwise a new line with quantity 1 is appended. It returns the resulting line.
func (s *Store) Add(item catalog.Item) Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.lines[i].Quantity++
		return s.lines[i]
	}

	line := Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	}
	s.lines = append(s.lines, line)
	return line
}

// UpdateQuantity sets the quantity of the line for id. Quantities below 1
// clamp to 1; deleting a line is only possible through Remove.
// It reports whether a line for id exists.
func (s *Store) UpdateQuantity(id string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = max(quantity, 1)
	return true
}

// SetQuantityText applies free-typed quantity input. Empty input counts as 1,
// anything that is not a whole number is rejected and leaves the cart unchanged.
func (s *Store) SetQuantityText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		s.UpdateQuantity(id, 1)
		return nil
	}

	quantity, err := strconv.Atoi(text)
	if err != nil {
		return ErrInvalidQuantity
	}
	s.UpdateQuantity(id, quantity)
	return nil
}

// Increment adds one unit to the line for id, if present
func (s *Store) Increment(id string) bool {
	return s.adjust(id, 1)
}

// Decrement removes one unit from the line for id, never going below 1
func (s *Store) Decrement(id string) bool {
	return s.adjust(id, -1)
}

func (s *Store) adjust(id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = max(s.lines[i].Quantity+delta, 1)
	return true
}

// Remove deletes the line for id. Removing a missing id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
}

// Lines returns a snapshot of the cart in insertion order
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the line for id, if present
func (s *Store) Line(id string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

// LineCount is the number of distinct items in the cart
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}

// TotalQuantity is the sum of all line quantities, shown as the cart badge
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Store) IsEmpty() bool {
	return s.LineCount() == 0
}
