package orders

import (
	"errors"
	"strconv"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrMalformedID = errors.New("invalid order id")
)

// ParseOrderID parses a path/query id. Only ASCII digits with an optional
// leading '-' are accepted; whitespace and '+' are ErrMalformedID, so callers
// can reject them before touching a Store.
func ParseOrderID(s string) (int64, error) {
	digits := s
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, ErrMalformedID
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, ErrMalformedID
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrMalformedID
	}
	return id, nil
}
