package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-pancake-orders/internal/orders"
)

func sampleOrder() orders.Order {
	return orders.Order{
		ID:       7,
		Hostel:   "Golden Inn",
		Room:     "12B",
		Quantity: 2,
		Flavors:  []string{"lemon", "mystery"},
		Total:    1500,
		Status:   orders.StatusPending,
	}
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(sampleOrder(), orders.SeedFlavors())

	assert.True(t, strings.HasPrefix(msg, "🌅 *Morning Glory Pancakes Order* 🥞\n\n"))
	assert.Contains(t, msg, "🏨 *Hostel:* Golden Inn\n")
	assert.Contains(t, msg, "🚪 *Room:* 12B\n")
	assert.Contains(t, msg, "📊 *Total Stacks:* 2\n")
	assert.Contains(t, msg, "🍋 Lemon\n")
	assert.Contains(t, msg, "🥞 mystery\n")
	assert.Contains(t, msg, "💰 *Total:* $15.00\n")
	assert.True(t, strings.HasSuffix(msg, "Thank you! 😊"))
}

func TestLink(t *testing.T) {
	link := Link("+254 794-056800", "Hi & bye = 1+1")
	require.True(t, strings.HasPrefix(link, "https://wa.me/254794056800?text="))
	assert.NotContains(t, link, " ")
	assert.Contains(t, link, "Hi%20%26%20bye%20%3D%201%2B1")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi & bye = 1+1", u.Query().Get("text"))
}

func TestOrderLinkRoundTrip(t *testing.T) {
	o := sampleOrder()
	catalog := orders.SeedFlavors()

	u, err := url.Parse(OrderLink("254794056800", o, catalog))
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/254794056800", u.Path)
	assert.Equal(t, FormatMessage(o, catalog), u.Query().Get("text"))
}
