package domain

// Product represents a menu item offered by a restaurant
//
// swagger:model
type Product struct {
	// The ID of the product, assigned on creation
	//
	// required: true
	// min: 1
	// example: 1
	ID int `json:"id"`

	// The name of the product
	//
	// required: false
	// example: Burger
	Name *string `json:"name"`

	// The description of the product
	//
	// required: false
	// example: Double patty with cheddar
	Description *string `json:"description"`

	// The price of the product
	//
	// required: false
	// example: 9.5
	Price *float64 `json:"price"`

	// The restaurant the product was created under
	//
	// required: true
	// example: 1
	RestaurantID int `json:"restaurant_id"`
}

// Products is a collection of Product
type Products []*Product

// Apply overwrites the editable fields with the values of the input.
// Fields missing from the input become nil.
func (p *Product) Apply(in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	c := &Product{ID: p.ID, RestaurantID: p.RestaurantID}
	if p.Name != nil {
		name := *p.Name
		c.Name = &name
	}
	if p.Description != nil {
		desc := *p.Description
		c.Description = &desc
	}
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	return c
}

// DisplayName returns the name of the product, or an empty string when it
// has none
func (p *Product) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}
