package cart

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"food-ordering-web/internal/models"
	"food-ordering-web/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, restaurantID int, price string) models.Product {
	return models.Product{
		ID:           id,
		Name:         "Product",
		Price:        decimal.RequireFromString(price),
		RestaurantID: restaurantID,
	}
}

func newCart(t *testing.T, st storage.Storage) *Store {
	t.Helper()
	c, err := New(st)
	require.NoError(t, err)
	return c
}

// failingStorage rejects every write
type failingStorage struct {
	*storage.MemoryStorage
}

func (f failingStorage) Save(string, any) error { return errors.New("cookie too large") }

func TestAddItem_SameProductAccumulates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		c := newCart(t, storage.NewMemoryStorage())
		calls := 1 + rng.Intn(10)
		sum := 0
		for i := 0; i < calls; i++ {
			q := 1 + rng.Intn(5)
			sum += q
			require.NoError(t, c.AddItem(product(1, 3, "9.90"), q, ""))
		}

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, sum, items[0].Quantity)
	}
}

func TestAddItem_ObservationReplacedWhenGiven(t *testing.T) {
	c := newCart(t, storage.NewMemoryStorage())

	require.NoError(t, c.AddItem(product(1, 3, "10"), 1, "no onions"))
	require.NoError(t, c.AddItem(product(1, 3, "10"), 1, ""))
	item, ok := c.Item(1)
	require.True(t, ok)
	assert.Equal(t, "no onions", item.Observation)

	require.NoError(t, c.AddItem(product(1, 3, "10"), 1, "extra cheese"))
	item, _ = c.Item(1)
	assert.Equal(t, "extra cheese", item.Observation)
}

func TestAddItem_RestaurantConflictLeavesCartUnchanged(t *testing.T) {
	st := storage.NewMemoryStorage()
	c := newCart(t, st)
	require.NoError(t, c.AddItem(product(1, 3, "10"), 2, ""))
	before := c.Items()
	writes := st.Writes()

	err := c.AddItem(product(9, 4, "5"), 1, "")

	assert.ErrorIs(t, err, ErrRestaurantConflict)
	assert.Equal(t, before, c.Items())
	assert.Equal(t, 3, c.RestaurantID())
	assert.Equal(t, writes, st.Writes())
}

func TestAddItem_Invalid(t *testing.T) {
	c := newCart(t, storage.NewMemoryStorage())

	assert.ErrorIs(t, c.AddItem(product(1, 3, "10"), 0, ""), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(product(1, 3, "10"), MaxQuantity+1, ""), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(product(0, 3, "10"), 1, ""), models.ErrInvalidInput)
	assert.ErrorIs(t, c.AddItem(product(1, 0, "10"), 1, ""), models.ErrInvalidInput)
	assert.True(t, c.IsEmpty())
}

func TestQuantityCap(t *testing.T) {
	tests := []struct {
		name    string
		first   int
		second  int
		wantErr bool
		want    int
	}{
		{"within cap", 40, 59, false, 99},
		{"one past cap", 50, 50, true, 50},
		{"overflow attempt", MaxQuantity, math.MaxInt, true, MaxQuantity},
		{"cap then one more", MaxQuantity, 1, true, MaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCart(t, storage.NewMemoryStorage())
			require.NoError(t, c.AddItem(product(1, 3, "10"), tt.first, ""))

			err := c.AddItem(product(1, 3, "10"), tt.second, "")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuantity)
			} else {
				assert.NoError(t, err)
			}

			item, ok := c.Item(1)
			require.True(t, ok)
			assert.Equal(t, tt.want, item.Quantity)
			assert.Equal(t, tt.want, c.ItemCount())
			assert.True(t, c.TotalPrice().IsPositive())
		})
	}

	c := newCart(t, storage.NewMemoryStorage())
	require.NoError(t, c.AddItem(product(1, 3, "10"), 1, ""))
	assert.ErrorIs(t, c.UpdateQuantity(1, MaxQuantity+1), ErrInvalidQuantity)
	assert.ErrorIs(t, c.UpdateQuantity(1, math.MaxInt), ErrInvalidQuantity)
	require.NoError(t, c.UpdateQuantity(1, MaxQuantity))
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.Product
		qty      []int
		discount string
		expected string
	}{
		{
			name:     "two units minus discount",
			items:    []models.Product{product(1, 3, "10.00")},
			qty:      []int{2},
			discount: "5.00",
			expected: "15",
		},
		{
			name:     "no discount",
			items:    []models.Product{product(1, 3, "12.50"), product(2, 3, "3.25")},
			qty:      []int{1, 4},
			discount: "0",
			expected: "25.5",
		},
		{
			name:     "discount equal to total",
			items:    []models.Product{product(1, 3, "8.00")},
			qty:      []int{1},
			discount: "8.00",
			expected: "0",
		},
		{
			name:     "discount above total is floored",
			items:    []models.Product{product(1, 3, "8.00")},
			qty:      []int{1},
			discount: "100",
			expected: "0",
		},
		{
			name:     "empty cart",
			discount: "3",
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCart(t, storage.NewMemoryStorage())
			for i, p := range tt.items {
				require.NoError(t, c.AddItem(p, tt.qty[i], ""))
			}
			require.NoError(t, c.ApplyDiscount(models.Discount{ID: 1, Amount: decimal.RequireFromString(tt.discount)}))

			total := c.TotalPrice()
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(total), "got %s", total)
			assert.False(t, total.IsNegative())
		})
	}
}

func TestTotalPrice_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 100; run++ {
		c := newCart(t, storage.NewMemoryStorage())
		lines := 1 + rng.Intn(4)
		for id := 1; id <= lines; id++ {
			price := decimal.New(int64(rng.Intn(5000)), -2)
			require.NoError(t, c.AddItem(models.Product{ID: id, Price: price, RestaurantID: 1}, 1+rng.Intn(3), ""))
		}
		discount := c.Subtotal().Add(decimal.New(int64(rng.Intn(5000)), -2))
		require.NoError(t, c.ApplyDiscount(models.Discount{ID: 1, Amount: discount}))

		assert.True(t, c.TotalPrice().IsZero())
	}
}

func TestClear(t *testing.T) {
	st := storage.NewMemoryStorage()
	c := newCart(t, st)
	require.NoError(t, c.AddItem(product(1, 3, "10"), 2, ""))
	require.NoError(t, c.ApplyDiscount(models.Discount{ID: 4, Amount: decimal.NewFromInt(1)}))

	require.NoError(t, c.Clear())

	assert.Empty(t, c.Items())
	assert.True(t, c.TotalPrice().IsZero())
	assert.True(t, c.Discount().IsZero())
	assert.Equal(t, 0, c.RestaurantID())
	assert.True(t, newCart(t, st).IsEmpty())
}

func TestRemoveAndUpdate(t *testing.T) {
	c := newCart(t, storage.NewMemoryStorage())
	require.NoError(t, c.AddItem(product(1, 3, "10"), 1, ""))
	require.NoError(t, c.AddItem(product(2, 3, "4"), 1, ""))

	require.NoError(t, c.UpdateQuantity(2, 5))
	assert.Equal(t, 6, c.ItemCount())
	assert.ErrorIs(t, c.UpdateQuantity(2, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.UpdateQuantity(99, 1), ErrItemNotFound)

	require.NoError(t, c.RemoveItem(1))
	assert.ErrorIs(t, c.RemoveItem(1), ErrItemNotFound)
	require.Len(t, c.Items(), 1)

	require.NoError(t, c.ApplyDiscount(models.Discount{ID: 2, Amount: decimal.NewFromInt(2)}))
	require.NoError(t, c.RemoveItem(2))
	assert.True(t, c.Discount().IsZero(), "discount goes with the last item")

	// an empty cart accepts any restaurant
	require.NoError(t, c.AddItem(product(7, 8, "1"), 1, ""))
	assert.Equal(t, 8, c.RestaurantID())
}

func TestApplyDiscount_Negative(t *testing.T) {
	c := newCart(t, storage.NewMemoryStorage())
	assert.ErrorIs(t, c.ApplyDiscount(models.Discount{ID: 1, Amount: decimal.NewFromInt(-1)}), ErrInvalidDiscount)
}

func TestRehydrate(t *testing.T) {
	st := storage.NewMemoryStorage()
	c := newCart(t, st)
	require.NoError(t, c.AddItem(product(1, 3, "10.00"), 2, "well done"))
	require.NoError(t, c.ApplyDiscount(models.Discount{ID: 9, Amount: decimal.RequireFromString("5.00")}))

	reloaded := newCart(t, st)

	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "well done", reloaded.Items()[0].Observation)
	assert.Equal(t, 9, reloaded.Discount().ID)
	assert.True(t, decimal.RequireFromString("15").Equal(reloaded.TotalPrice()))
}

func TestNew_CorruptCartIsDiscarded(t *testing.T) {
	st := storage.NewMemoryStorage()
	require.NoError(t, st.Save(storageKey, []string{"nope"}))

	c := newCart(t, st)
	assert.True(t, c.IsEmpty())
	assert.False(t, st.Has(storageKey))
}

func TestPersistFailureLeavesCartUnchanged(t *testing.T) {
	c := newCart(t, failingStorage{storage.NewMemoryStorage()})

	err := c.AddItem(product(1, 3, "10"), 1, "")

	require.Error(t, err)
	assert.True(t, c.IsEmpty())
}
