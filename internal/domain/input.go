package domain

import (
	"encoding/json"
)

// ProductInput is the request body accepted when creating or updating a product
//
// swagger:model
type ProductInput struct {
	// required: false
	// example: Burger
	Name *string `json:"name"`

	// required: false
	// example: Double patty with cheddar
	Description *string `json:"description"`

	// required: false
	// example: 9.5
	Price *float64 `json:"price"`
}

// UnmarshalJSON decodes the body field by field. A field holding a value of
// the wrong type is treated as absent instead of failing the whole body.
func (in *ProductInput) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*in = ProductInput{
		Name:        decodeField[string](raw["name"]),
		Description: decodeField[string](raw["description"]),
		Price:       decodeField[float64](raw["price"]),
	}
	return nil
}

func decodeField[T any](msg json.RawMessage) *T {
	if len(msg) == 0 {
		return nil
	}
	var v *T
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil
	}
	return v
}
