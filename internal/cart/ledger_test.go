package cart_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/cart"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) models.Product {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}

	return models.Product{ID: id, Price: d, Name: models.MultilingualText{EN: id}}
}

func TestAdd(t *testing.T) {
	t.Run("New Line Appended", func(t *testing.T) {
		l := cart.NewLedger()

		require.NoError(t, l.Add(product("hammer", "10.00"), 2))

		lines := l.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "hammer", lines[0].Product.ID)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("Re-Adding Increments Quantity", func(t *testing.T) {
		l := cart.NewLedger()

		require.NoError(t, l.Add(product("hammer", "10.00"), 2))
		require.NoError(t, l.Add(product("hammer", "10.00"), 3))

		lines := l.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
		assert.Equal(t, 5, l.ItemCount())
	})

	t.Run("Rejects Non-Positive Quantity", func(t *testing.T) {
		l := cart.NewLedger()

		assert.ErrorIs(t, l.Add(product("hammer", "10.00"), 0), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, l.Add(product("hammer", "10.00"), -3), cart.ErrInvalidQuantity)
		assert.True(t, l.IsEmpty())
	})

	t.Run("Price Snapshot Is Frozen At Add Time", func(t *testing.T) {
		l := cart.NewLedger()
		p := product("hammer", "10.00")

		require.NoError(t, l.Add(p, 1))

		// A later catalog price change must not alter the line.
		p.Price = decimal.NewFromInt(99)

		assert.True(t, l.Lines()[0].Product.Price.Equal(decimal.NewFromInt(10)))
	})

	t.Run("Insertion Order Preserved", func(t *testing.T) {
		l := cart.NewLedger()

		require.NoError(t, l.Add(product("hammer", "10.00"), 1))
		require.NoError(t, l.Add(product("drill", "89.99"), 1))
		require.NoError(t, l.Add(product("hammer", "10.00"), 1))
		require.NoError(t, l.Add(product("nails", "2.50"), 1))

		lines := l.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, "hammer", lines[0].Product.ID)
		assert.Equal(t, "drill", lines[1].Product.ID)
		assert.Equal(t, "nails", lines[2].Product.ID)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Sets Exactly", func(t *testing.T) {
		l := cart.NewLedger()
		require.NoError(t, l.Add(product("hammer", "10.00"), 5))

		found := l.UpdateQuantity("hammer", 2)

		assert.True(t, found)
		assert.Equal(t, 2, l.Lines()[0].Quantity)
	})

	t.Run("Zero Removes The Line", func(t *testing.T) {
		l := cart.NewLedger()
		require.NoError(t, l.Add(product("hammer", "10.00"), 5))
		require.NoError(t, l.Add(product("drill", "89.99"), 1))

		found := l.UpdateQuantity("hammer", 0)

		assert.True(t, found)
		require.Len(t, l.Lines(), 1)
		assert.Equal(t, "drill", l.Lines()[0].Product.ID)
		assert.Equal(t, 1, l.ItemCount())
	})

	t.Run("Negative Removes The Line", func(t *testing.T) {
		l := cart.NewLedger()
		require.NoError(t, l.Add(product("hammer", "10.00"), 5))

		assert.True(t, l.UpdateQuantity("hammer", -1))
		assert.True(t, l.IsEmpty())
	})

	t.Run("Unknown Product", func(t *testing.T) {
		l := cart.NewLedger()

		assert.False(t, l.UpdateQuantity("hammer", 3))
	})
}

func TestRemove(t *testing.T) {
	t.Run("Removes Present Line", func(t *testing.T) {
		l := cart.NewLedger()
		require.NoError(t, l.Add(product("hammer", "10.00"), 2))

		l.Remove("hammer")

		assert.True(t, l.IsEmpty())
		assert.Equal(t, 0, l.ItemCount())
	})

	t.Run("Absent Product Is A No-Op", func(t *testing.T) {
		l := cart.NewLedger()
		require.NoError(t, l.Add(product("hammer", "10.00"), 2))

		l.Remove("drill")

		assert.Len(t, l.Lines(), 1)
	})
}

func TestClear(t *testing.T) {
	l := cart.NewLedger()
	require.NoError(t, l.Add(product("hammer", "10.00"), 2))
	require.NoError(t, l.Add(product("drill", "89.99"), 1))

	l.Clear()

	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.ItemCount())
	assert.Empty(t, l.Lines())
}

func TestSubtotal(t *testing.T) {
	l := cart.NewLedger()
	require.NoError(t, l.Add(product("hammer", "10.00"), 2))
	require.NoError(t, l.Add(product("tape", "5.50"), 1))

	expected, _ := decimal.NewFromString("25.50")
	assert.True(t, l.Subtotal().Equal(expected), "expected 25.50, got %s", l.Subtotal())
}

// Property from the invariants: any sequence of operations leaves at most
// one line per product id with quantity >= 1.
func TestLedgerInvariants(t *testing.T) {
	l := cart.NewLedger()

	require.NoError(t, l.Add(product("hammer", "10.00"), 2))
	require.NoError(t, l.Add(product("drill", "89.99"), 1))
	require.NoError(t, l.Add(product("hammer", "10.00"), 1))
	l.UpdateQuantity("drill", 4)
	l.Remove("nails")
	require.NoError(t, l.Add(product("nails", "2.50"), 10))
	l.UpdateQuantity("nails", 0)

	seen := map[string]bool{}
	for _, line := range l.Lines() {
		assert.False(t, seen[line.Product.ID], "duplicate line for %s", line.Product.ID)
		seen[line.Product.ID] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}

	assert.Equal(t, 7, l.ItemCount())
}
