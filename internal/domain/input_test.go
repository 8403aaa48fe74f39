package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInputDecoding(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		wantName    *string
		wantDesc    *string
		wantPrice   *float64
		expectError bool
	}{
		{"All fields", `{"name":"Burger","description":"Beef","price":9.5}`, ptr("Burger"), ptr("Beef"), ptr(9.5), false},
		{"Missing fields", `{"name":"Burger"}`, ptr("Burger"), nil, nil, false},
		{"Explicit nulls", `{"name":null,"description":null,"price":null}`, nil, nil, nil, false},
		{"Wrongly typed price", `{"name":"Fries","price":"cheap"}`, ptr("Fries"), nil, nil, false},
		{"Wrongly typed name", `{"name":42,"price":3}`, nil, nil, ptr(3.0), false},
		{"Unknown keys ignored", `{"sku":"abc","price":1.25}`, nil, nil, ptr(1.25), false},
		{"Empty object", `{}`, nil, nil, nil, false},
		{"Null body", `null`, nil, nil, nil, false},
		{"Not an object", `[1,2,3]`, nil, nil, nil, true},
		{"Malformed", `{"name":`, nil, nil, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var in ProductInput
			err := json.Unmarshal([]byte(tc.body), &in)
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.wantName, in.Name)
			assert.Equal(t, tc.wantDesc, in.Description)
			assert.Equal(t, tc.wantPrice, in.Price)
		})
	}
}

func TestProductApplyReplacesAllFields(t *testing.T) {
	p := &Product{ID: 7, Name: ptr("Burger"), Description: ptr("Beef"), Price: ptr(9.5), RestaurantID: 3}

	p.Apply(ProductInput{Name: ptr("Cheeseburger"), Price: ptr(10.5)})

	assert.Equal(t, 7, p.ID)
	assert.Equal(t, 3, p.RestaurantID)
	assert.Equal(t, "Cheeseburger", *p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, 10.5, *p.Price)
}

func TestProductCloneDoesNotAlias(t *testing.T) {
	p := &Product{ID: 1, Name: ptr("Soda"), Price: ptr(2.0)}

	c := p.Clone()
	*c.Name = "Water"
	*c.Price = 1.0

	assert.Equal(t, "Soda", *p.Name)
	assert.Equal(t, 2.0, *p.Price)
	assert.Nil(t, c.Description)
}

func TestProductMarshalsNullFields(t *testing.T) {
	p := &Product{ID: 1, Name: ptr("Burger"), Price: ptr(9.5), RestaurantID: 1}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"name":"Burger","description":null,"price":9.5,"restaurant_id":1}`,
		string(b))
}

func ptr[T any](v T) *T {
	return &v
}
