package storage

// Product is one entry of the read-only reference catalog. Price and weight
// are per unit and may be absent for service items.
type Product struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Price  *float64 `json:"price,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
