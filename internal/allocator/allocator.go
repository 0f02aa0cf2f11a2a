// Package allocator hands out receipt numbers from the disjoint ranges
// reserved for each seller.
package allocator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/receiptbook/internal/models"
)

// DefaultMaxRangeWidth is the widest range (end - start) a seller may hold.
const DefaultMaxRangeWidth = 50

// Seller ranges must fall within [MinReceiptNumber, MaxReceiptNumber].
const (
	MinReceiptNumber = 1
	MaxReceiptNumber = math.MaxInt32
)

// legacyBase is the number legacy sellers count up from when nothing was issued yet.
const legacyBase = 1000

var (
	ErrInvalidRange     = errors.New("range start must be lower than range end")
	ErrRangeOutOfBounds = fmt.Errorf("range must lie between %d and %d", MinReceiptNumber, MaxReceiptNumber)
	ErrRangeTooWide     = errors.New("range is wider than allowed")
	ErrRangeOverlap     = errors.New("range is already in use by another seller")
	ErrRangeExhausted   = errors.New("no receipt number available in seller range")
	ErrNumberOutOfRange = errors.New("receipt number is outside seller range")
)

// RangesOverlap reports whether the inclusive intervals [startA, endA] and
// [startB, endB] share at least one number.
func RangesOverlap(startA, endA, startB, endB int) bool {
	return (startA >= startB && startA <= endB) ||
		(endA >= startB && endA <= endB) ||
		(startA <= startB && endA >= endB)
}

// ValidateRange checks the shape of a range on its own: both ends must be
// valid receipt numbers, start must be below end and the width may not
// exceed maxWidth.
func ValidateRange(start, end, maxWidth int) error {
	if start < MinReceiptNumber || end > MaxReceiptNumber {
		return ErrRangeOutOfBounds
	}
	if start >= end {
		return ErrInvalidRange
	}
	if end-start > maxWidth {
		return fmt.Errorf("%w: maximum is %d numbers", ErrRangeTooWide, maxWidth)
	}
	return nil
}

// IsRangeAvailable reports whether no seller other than excludeSellerID holds
// a range overlapping [start, end]. Pass an empty excludeSellerID when
// creating a seller and the seller's own ID when editing it in place.
func IsRangeAvailable(sellers []*models.Seller, start, end int, excludeSellerID string) bool {
	return conflictingSeller(sellers, start, end, excludeSellerID) == nil
}

// CheckRange runs ValidateRange and IsRangeAvailable and returns the first
// failure, naming the conflicting seller on overlap.
func CheckRange(sellers []*models.Seller, start, end, maxWidth int, excludeSellerID string) error {
	if err := ValidateRange(start, end, maxWidth); err != nil {
		return err
	}
	if s := conflictingSeller(sellers, start, end, excludeSellerID); s != nil {
		return fmt.Errorf("%w: %s holds %04d-%04d", ErrRangeOverlap, s.Name, s.StartRange, s.EndRange)
	}
	return nil
}

func conflictingSeller(sellers []*models.Seller, start, end int, excludeSellerID string) *models.Seller {
	for _, s := range sellers {
		if s.ID == excludeSellerID || !s.HasRange() {
			continue
		}
		if RangesOverlap(start, end, s.StartRange, s.EndRange) {
			return s
		}
	}
	return nil
}

// ValidateReceiptNumber reports whether sellerID names a known seller whose
// range contains number.
func ValidateReceiptNumber(sellers []*models.Seller, number int, sellerID string) bool {
	s := findSeller(sellers, sellerID)
	if s == nil {
		return false
	}
	return s.Contains(number)
}

// NextAvailableNumber scans the seller's range in ascending order and returns
// the first number not present in used. It returns false once every number
// in the range has been issued.
func NextAvailableNumber(seller *models.Seller, used []int) (int, bool) {
	if seller == nil || !seller.HasRange() || seller.StartRange > seller.EndRange {
		return 0, false
	}
	taken := make(map[int]bool, len(used))
	for _, n := range used {
		taken[n] = true
	}
	// EndRange may be math.MaxInt, so stop on equality rather than n <= end.
	for n := seller.StartRange; ; n++ {
		if !taken[n] {
			return n, true
		}
		if n == seller.EndRange {
			return 0, false
		}
	}
}

// SellerForNumber returns the active seller whose range contains number, or nil.
func SellerForNumber(sellers []*models.Seller, number int) *models.Seller {
	for _, s := range sellers {
		if s.Active && s.HasRange() && s.Contains(number) {
			return s
		}
	}
	return nil
}

// LegacyNextNumber suggests a number for sellers without a range from the
// last number issued under their name.
func LegacyNextNumber(last map[string]int, sellerName string) int {
	n, ok := last[sellerName]
	if !ok || n == 0 {
		n = legacyBase
	}
	return n + 1
}

func findSeller(sellers []*models.Seller, id string) *models.Seller {
	for _, s := range sellers {
		if s.ID == id {
			return s
		}
	}
	return nil
}
