package orders

type Flavor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"` // slug, unik
	Emoji string `json:"emoji"`
}

type Hostel struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Order struct {
	ID           int64    `json:"id"`
	Hostel       string   `json:"hostel"`
	Room         string   `json:"room"`
	Quantity     int      `json:"quantity"`
	Flavors      []string `json:"flavors"`
	CustomerName *string  `json:"customerName"`
	PhoneNumber  *string  `json:"phoneNumber"`
	Total        int      `json:"total"`  // cents
	Status       Status   `json:"status"` // lihat status.go
}

// CreateOrderInput is a validated order-creation payload. Total is never part of
// it; the store prices the order itself.
type CreateOrderInput struct {
	Hostel   string   `json:"hostel"`
	Room     string   `json:"room"`
	Quantity int      `json:"quantity"`
	Flavors  []string `json:"flavors"`
}

func (o Order) clone() Order {
	c := o
	c.Flavors = append([]string(nil), o.Flavors...)
	if o.CustomerName != nil {
		v := *o.CustomerName
		c.CustomerName = &v
	}
	if o.PhoneNumber != nil {
		v := *o.PhoneNumber
		c.PhoneNumber = &v
	}
	return c
}
