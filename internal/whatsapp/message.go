// Package whatsapp builds the order confirmation text and the wa.me deep link
// the customer is sent to after an order is created.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ariefcatur/go-pancake-orders/internal/orders"
)

const (
	baseURL       = "https://wa.me/"
	defaultEmoji  = "🥞"
	messageHeader = "🌅 *Morning Glory Pancakes Order* 🥞"
	messageFooter = "Please confirm this order and let me know the delivery time. Thank you! 😊"
)

// FormatMessage renders o as the chat message. Flavor slugs are resolved against
// the catalog; unknown slugs are shown as-is.
func FormatMessage(o orders.Order, catalog []orders.Flavor) string {
	var b strings.Builder
	b.WriteString(messageHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "🏨 *Hostel:* %s\n", o.Hostel)
	fmt.Fprintf(&b, "🚪 *Room:* %s\n", o.Room)
	fmt.Fprintf(&b, "📊 *Total Stacks:* %d\n", o.Quantity)
	b.WriteString("🎯 *Flavors:*\n")
	for _, slug := range o.Flavors {
		emoji, name := defaultEmoji, slug
		if f, ok := orders.FlavorBySlug(catalog, slug); ok {
			emoji, name = f.Emoji, f.Name
		}
		fmt.Fprintf(&b, "%s %s\n", emoji, name)
	}
	fmt.Fprintf(&b, "💰 *Total:* %s\n\n", orders.FormatCents(o.Total))
	b.WriteString(messageFooter)
	return b.String()
}

// Link returns https://wa.me/<number>?text=<message>. Non-digits in number are dropped.
func Link(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	// spasi jadi %20, bukan '+'; '+' asli sudah jadi %2B
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + digits + "?text=" + text
}

// OrderLink is FormatMessage followed by Link.
func OrderLink(number string, o orders.Order, catalog []orders.Flavor) string {
	return Link(number, FormatMessage(o, catalog))
}
