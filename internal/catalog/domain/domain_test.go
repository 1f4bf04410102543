package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalRemoteShape(t *testing.T) {
	payload := `{
		"id": 7,
		"title": "White Gold Plated Princess",
		"price": 9.99,
		"description": "Classic Created Wedding Engagement Solitaire",
		"category": "jewelery",
		"image": "https://example.com/7.jpg",
		"rating": {"rate": 3, "count": 400}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))

	assert.Equal(t, ProductID("7"), p.ID)
	assert.Equal(t, 9.99, p.Price)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 400, p.Rating.Count)
}

func TestProductID_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductID
		wantErr bool
	}{
		{in: `"sku-1"`, want: "sku-1"},
		{in: `42`, want: "42"},
		{in: `null`, want: ""},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		var id ProductID
		err := json.Unmarshal([]byte(tt.in), &id)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, id)
	}
}

func TestPatch_UnmarshalMarksPresentKeys(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"search":"hat","minPrice":null,"page":2}`), &p))

	assert.True(t, p.Search.Set)
	assert.Equal(t, "hat", p.Search.Value)
	assert.True(t, p.MinPrice.Set)
	assert.Nil(t, p.MinPrice.Value)
	assert.True(t, p.Page.Set)
	assert.False(t, p.MaxPrice.Set)
	assert.False(t, p.Sort.Set)
	assert.True(t, p.TouchesResultSet())
}

func TestPatch_PageOnly(t *testing.T) {
	p := Patch{Page: Some(2), Limit: Some(24)}

	assert.False(t, p.IsEmpty())
	assert.False(t, p.TouchesResultSet())
	assert.True(t, Patch{}.IsEmpty())
}

func TestPatch_Merge(t *testing.T) {
	merged := Patch{Search: Some("a"), MaxPrice: Some(Price(10))}.
		Merge(Patch{Search: Some("ab"), MinPrice: Some(Price(1))})

	assert.Equal(t, "ab", merged.Search.Value)
	assert.Equal(t, Price(1), merged.MinPrice.Value)
	assert.Equal(t, Price(10), merged.MaxPrice.Value)
	assert.False(t, merged.Sort.Set)
}

func TestPatch_Without(t *testing.T) {
	queued := Patch{Search: Some("old"), MaxPrice: Some(Price(30)), Page: Some(3)}

	rest := queued.Without(Patch{Search: Some("new"), Page: Some(1)})

	assert.False(t, rest.Search.Set)
	assert.False(t, rest.Page.Set)
	assert.Equal(t, Price(30), rest.MaxPrice.Value)
	assert.True(t, queued.Search.Set, "receiver is left untouched")
	assert.True(t, queued.Without(queued).IsEmpty())
}

func TestCriteria_CloneAndEqual(t *testing.T) {
	c := DefaultCriteria()
	c.MinPrice = Price(5)

	clone := c.Clone()
	assert.True(t, c.Equal(clone))

	*clone.MinPrice = 6
	assert.False(t, c.Equal(clone))
	assert.Equal(t, 5, *c.MinPrice)
}

func TestSortOrder_Valid(t *testing.T) {
	assert.True(t, SortDefault.Valid())
	assert.True(t, SortPriceAsc.Valid())
	assert.True(t, SortPriceDesc.Valid())
	assert.False(t, SortOrder("").Valid())
	assert.False(t, SortOrder("price-asc").Valid())
}
