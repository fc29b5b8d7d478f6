package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() []Category {
	return []Category{
		{Name: "Fashion", Icon: "👗", Count: 99},
		{Name: "Crafts", Icon: "🎨"},
		{Name: "Food", Icon: "🍲"},
	}
}

func testSellers() []Seller {
	return []Seller{
		{ID: 1, Name: "Kente Boutique", Category: "Fashion", Rating: 4.5, Products: []string{"Kente"}, Featured: true},
		{ID: 2, Name: "Bead Works", Category: "Crafts", Rating: 4.8},
		{ID: 3, Name: "Jollof House", Category: "Food", Rating: 7, JoinedDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Name: "Adire Studio", Category: "Fashion", Rating: -1, Featured: true},
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog(testSellers(), testCategories())
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())

	t.Run("counts are derived", func(t *testing.T) {
		counts := map[string]int{}
		for _, cat := range c.Categories() {
			counts[cat.Name] = cat.Count
		}
		assert.Equal(t, map[string]int{"Fashion": 2, "Crafts": 1, "Food": 1}, counts)
	})

	t.Run("ratings are clamped", func(t *testing.T) {
		s, ok := c.Seller(3)
		require.True(t, ok)
		assert.Equal(t, MaxRating, s.Rating)
		s, ok = c.Seller(4)
		require.True(t, ok)
		assert.Equal(t, MinRating, s.Rating)
	})

	t.Run("insertion order", func(t *testing.T) {
		ids := []int{}
		for _, s := range c.Sellers() {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []int{1, 2, 3, 4}, ids)
		assert.Equal(t, 2, c.Position(3))
		assert.Equal(t, -1, c.Position(42))
	})

	t.Run("featured", func(t *testing.T) {
		featured := c.Featured()
		require.Len(t, featured, 2)
		assert.Equal(t, 1, featured[0].ID)
		assert.Equal(t, 4, featured[1].ID)
	})

	t.Run("lookups", func(t *testing.T) {
		_, ok := c.Seller(99)
		assert.False(t, ok)
		cat, ok := c.Category("Crafts")
		require.True(t, ok)
		assert.Equal(t, "🎨", cat.Icon)
		assert.False(t, c.HasCategory("crafts"), "category lookup is exact")
	})
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	c, err := NewCatalog(testSellers(), testCategories())
	require.NoError(t, err)

	sellers := c.Sellers()
	sellers[0].Name = "changed"
	sellers[0].Products[0] = "changed"

	s, _ := c.Seller(1)
	assert.Equal(t, "Kente Boutique", s.Name)
	assert.Equal(t, []string{"Kente"}, s.Products)

	cats := c.Categories()
	cats[0].Count = 0
	again, _ := c.Category("Fashion")
	assert.Equal(t, 2, again.Count)
}

func TestNewCatalogDoesNotAliasInput(t *testing.T) {
	sellers := testSellers()
	c, err := NewCatalog(sellers, testCategories())
	require.NoError(t, err)

	sellers[0].Products[0] = "mutated"
	s, _ := c.Seller(1)
	assert.Equal(t, "Kente", s.Products[0])
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name       string
		sellers    []Seller
		categories []Category
		want       error
	}{
		{
			name:       "duplicate seller id",
			sellers:    []Seller{{ID: 1, Name: "A", Category: "Fashion"}, {ID: 1, Name: "B", Category: "Fashion"}},
			categories: testCategories(),
			want:       ErrDuplicateSellerID,
		},
		{
			name:       "duplicate category",
			categories: []Category{{Name: "Fashion"}, {Name: "Fashion"}},
			want:       ErrDuplicateCategory,
		},
		{
			name:       "unknown category",
			sellers:    []Seller{{ID: 1, Name: "A", Category: "Music"}},
			categories: testCategories(),
			want:       ErrUnknownCategory,
		},
		{
			name:       "missing name",
			sellers:    []Seller{{ID: 1, Category: "Fashion"}},
			categories: testCategories(),
			want:       ErrInvalidRecord,
		},
		{
			name:       "non-positive id",
			sellers:    []Seller{{ID: 0, Name: "A", Category: "Fashion"}},
			categories: testCategories(),
			want:       ErrInvalidRecord,
		},
		{
			name:       "unnamed category",
			categories: []Category{{Icon: "x"}},
			want:       ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.sellers, tt.categories)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
		})
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Sellers())
	assert.Nil(t, c.Categories())
	assert.Nil(t, c.Featured())
	_, ok := c.Seller(1)
	assert.False(t, ok)
}

func TestEmptyCatalog(t *testing.T) {
	c, err := NewCatalog(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Sellers())
}
