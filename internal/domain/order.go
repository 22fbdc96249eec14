package domain

import "time"

type OrderHeader struct {
	OrderID      string    `json:"order_id"`
	ExternalID   string    `json:"external_id"`
	CustomerID   string    `json:"customer_id"`
	ShopName     string    `json:"shop_name"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	Currency     string    `json:"currency"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"last_modified"`
}

type OrderLine struct {
	ExternalID  string  `json:"external_id"`
	ProductID   string  `json:"product_id"`
	VariantID   string  `json:"variant_id,omitempty"`
	DisplayName string  `json:"display_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type ShippingInfo struct {
	PartyID           string   `json:"party_id"`
	ShippingMethodID  string   `json:"shipping_method_id"`
	LineIDs           []string `json:"line_ids,omitempty"`
	ElectronicAddress string   `json:"electronic_delivery_email,omitempty"`
}

type Order struct {
	OrderHeader
	Lines    []OrderLine    `json:"lines"`
	Shipping []ShippingInfo `json:"shipping"`
	Parties  []Party        `json:"parties,omitempty"`
}

// IsItemShipping reports whether lines ship to more than one destination
func (o *Order) IsItemShipping() bool {
	return o != nil && len(o.Shipping) > 1 && len(o.Lines) > 1
}

type ReorderInput struct {
	OrderID string `json:"order_id"`
}

type CancelOrderInput struct {
	OrderID              string   `json:"order_id"`
	OrderLineExternalIDs []string `json:"order_line_external_ids"`
}

// RecentOrders keeps at most limit orders modified after since, in input order
func RecentOrders(orders []OrderHeader, since time.Time, limit int) []OrderHeader {
	recent := make([]OrderHeader, 0, limit)
	for _, o := range orders {
		if len(recent) >= limit {
			break
		}
		if o.LastModified.After(since) {
			recent = append(recent, o)
		}
	}
	return recent
}
