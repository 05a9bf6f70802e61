package orders

import "fmt"

const (
	UnitPriceCents = 800
	// Two stacks go for $15 instead of $16. Only quantity 2 gets it.
	PairPriceCents = 1500
)

// Price returns the order total in cents for the given number of stacks.
func Price(quantity int) int {
	if quantity == 2 {
		return PairPriceCents
	}
	return quantity * UnitPriceCents
}

func PriceInput(in CreateOrderInput) int { return Price(in.Quantity) }

// FormatCents renders a cents amount as dollars, e.g. 1500 -> "$15.00".
func FormatCents(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
