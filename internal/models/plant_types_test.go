package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantJSONShape(t *testing.T) {
	p := Plant{ID: 1, Name: "Aloe", Image: "aloe.jpg", Price: 10.5, IsInStock: true}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	assert.Equal(t,
		`{"id":1,"name":"Aloe","image":"aloe.jpg","price":10.5,"is_in_stock":true}`,
		string(b),
	)
}

func TestPlantJSONKeepsNativeTypes(t *testing.T) {
	b, err := json.Marshal(Plant{ID: 7, Name: "ZZ", Image: "zz.png", Price: 0})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Len(t, raw, 5)
	assert.IsType(t, float64(0), raw["id"])
	assert.IsType(t, "", raw["name"])
	assert.IsType(t, "", raw["image"])
	assert.IsType(t, float64(0), raw["price"])
	assert.Equal(t, false, raw["is_in_stock"])
}
