package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
		want       CreateOrderInput
	}{
		{
			name: "valid request",
			body: `{"hostel":"Sunrise Hostel","room":"12B","quantity":2,"flavors":["plain","lemon"]}`,
			want: CreateOrderInput{Hostel: "Sunrise Hostel", Room: "12B", Quantity: 2, Flavors: []string{"plain", "lemon"}},
		},
		{
			name: "unknown fields ignored",
			body: `{"hostel":"Golden Inn","room":"4","quantity":1,"flavors":["vanilla"],"total":1,"status":"paid","coupon":{"x":1}}`,
			want: CreateOrderInput{Hostel: "Golden Inn", Room: "4", Quantity: 1, Flavors: []string{"vanilla"}},
		},
		{
			name: "integral float quantity accepted",
			body: `{"hostel":"h","room":"r","quantity":3.0,"flavors":["orange"]}`,
			want: CreateOrderInput{Hostel: "h", Room: "r", Quantity: 3, Flavors: []string{"orange"}},
		},
		{
			name:       "empty flavors",
			body:       `{"hostel":"h","room":"r","quantity":1,"flavors":[]}`,
			wantFields: []string{"flavors"},
		},
		{
			name:       "quantity zero",
			body:       `{"hostel":"h","room":"r","quantity":0,"flavors":["plain"]}`,
			wantFields: []string{"quantity"},
		},
		{
			name:       "quantity eleven",
			body:       `{"hostel":"h","room":"r","quantity":11,"flavors":["plain"]}`,
			wantFields: []string{"quantity"},
		},
		{
			name:       "empty room",
			body:       `{"hostel":"h","room":"","quantity":1,"flavors":["plain"]}`,
			wantFields: []string{"room"},
		},
		{
			name:       "empty hostel",
			body:       `{"hostel":"","room":"r","quantity":1,"flavors":["plain"]}`,
			wantFields: []string{"hostel"},
		},
		{
			name:       "every field wrong",
			body:       `{"hostel":"","room":"","quantity":0,"flavors":[]}`,
			wantFields: []string{"hostel", "room", "quantity", "flavors"},
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantFields: []string{"hostel", "room", "quantity", "flavors"},
		},
		{
			name:       "null fields",
			body:       `{"hostel":null,"room":null,"quantity":null,"flavors":null}`,
			wantFields: []string{"hostel", "room", "quantity", "flavors"},
		},
		{
			name:       "wrong types",
			body:       `{"hostel":5,"room":true,"quantity":"2","flavors":"plain"}`,
			wantFields: []string{"hostel", "room", "quantity", "flavors"},
		},
		{
			name:       "fractional quantity",
			body:       `{"hostel":"h","room":"r","quantity":2.5,"flavors":["plain"]}`,
			wantFields: []string{"quantity"},
		},
		{
			name:       "non-string flavor entry",
			body:       `{"hostel":"h","room":"r","quantity":1,"flavors":["plain",7]}`,
			wantFields: []string{"flavors[1]"},
		},
		{
			name:       "huge quantity",
			body:       `{"hostel":"h","room":"r","quantity":1e20,"flavors":["plain"]}`,
			wantFields: []string{"quantity"},
		},
		{
			name:       "not an object",
			body:       `["plain"]`,
			wantFields: []string{""},
		},
		{
			name:       "null body",
			body:       `null`,
			wantFields: []string{""},
		},
		{
			name:       "broken json",
			body:       `{"hostel":`,
			wantFields: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCreateOrder([]byte(tt.body))
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields())
			assert.Equal(t, CreateOrderInput{}, got)
		})
	}
}

func TestDecodeCreateOrder_EmptySelectionCode(t *testing.T) {
	_, err := DecodeCreateOrder([]byte(`{"hostel":"h","room":"r","quantity":1,"flavors":[]}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, CodeEmptySelection, verr.Issues[0].Code)
	assert.Equal(t, "Please select at least one flavor", verr.Issues[0].Message)
}

func TestValidationErrorWrapped(t *testing.T) {
	err := CreateOrderInput{Hostel: "h", Room: "r", Quantity: 11, Flavors: []string{"plain"}}.Validate()
	wrapped := fmt.Errorf("create: %w", err)

	var verr *ValidationError
	require.True(t, errors.As(wrapped, &verr))
	assert.Equal(t, CodeTooBig, verr.Issues[0].Code)
	assert.Contains(t, wrapped.Error(), "quantity: Number must be less than or equal to 10")
}

func TestCreateOrderInputValidate(t *testing.T) {
	ok := CreateOrderInput{Hostel: "h", Room: "r", Quantity: 10, Flavors: []string{"plain"}}
	assert.NoError(t, ok.Validate())

	var verr *ValidationError
	require.ErrorAs(t, CreateOrderInput{}.Validate(), &verr)
	assert.Equal(t, []string{"hostel", "room", "quantity", "flavors"}, verr.Fields())
}
