package cart_test

import (
	"testing"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, productID kernel.UUID, optionID *kernel.UUID, quantity int) cart.Line {
	t.Helper()
	line, err := cart.NewLine(productID, optionID, quantity)
	require.NoError(t, err)
	return line
}

func TestNewLine(t *testing.T) {
	t.Run("should create a line with an optional option", func(t *testing.T) {
		productID := kernel.NewUUID()
		optionID := kernel.NewUUID()

		line, err := cart.NewLine(productID, &optionID, 2)

		require.NoError(t, err)
		assert.True(t, line.ProductID().IsEqual(productID))
		require.NotNil(t, line.OptionID())
		assert.True(t, line.OptionID().IsEqual(optionID))
		assert.Equal(t, 2, line.Quantity())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := cart.NewLine(kernel.NewUUID(), nil, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var line cart.Line

		require.ErrorIs(t, line.Validate(), cart.ErrLineIsNotConstructed)
	})
}

func TestLine_MatchesSelection(t *testing.T) {
	productID := kernel.NewUUID()
	optionID := kernel.NewUUID()
	otherOption := kernel.NewUUID()

	t.Run("should match same product and option regardless of quantity", func(t *testing.T) {
		a := mustLine(t, productID, &optionID, 1)
		b := mustLine(t, productID, &optionID, 5)

		assert.True(t, a.MatchesSelection(b))
	})

	t.Run("should distinguish option variants of one product", func(t *testing.T) {
		a := mustLine(t, productID, &optionID, 1)
		b := mustLine(t, productID, &otherOption, 1)
		c := mustLine(t, productID, nil, 1)

		assert.False(t, a.MatchesSelection(b))
		assert.False(t, a.MatchesSelection(c))
		assert.False(t, c.MatchesSelection(a))
	})

	t.Run("should match optionless lines of the same product", func(t *testing.T) {
		a := mustLine(t, productID, nil, 1)
		b := mustLine(t, productID, nil, 3)

		assert.True(t, a.MatchesSelection(b))
	})
}

func TestCart_AddLine(t *testing.T) {
	t.Run("should append distinct selections", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, c.AddLine(mustLine(t, kernel.NewUUID(), nil, 1)))
		require.NoError(t, c.AddLine(mustLine(t, kernel.NewUUID(), nil, 2)))

		assert.Len(t, c.Lines(), 2)
		assert.False(t, c.IsEmpty())
	})

	t.Run("should merge quantities for the same selection", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		productID := kernel.NewUUID()

		require.NoError(t, c.AddLine(mustLine(t, productID, nil, 1)))
		require.NoError(t, c.AddLine(mustLine(t, productID, nil, 2)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity())
	})

	t.Run("should reject an unconstructed line", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)

		require.Error(t, c.AddLine(cart.Line{}))
	})
}

func mustSelection(t *testing.T, line cart.Line) cart.Selection {
	t.Helper()
	selection, err := cart.NewSelection(line.ProductID(), line.OptionID())
	require.NoError(t, err)
	return selection
}

func TestNewSelection(t *testing.T) {
	t.Run("should create a selection with an optional option", func(t *testing.T) {
		productID := kernel.NewUUID()
		optionID := kernel.NewUUID()

		selection, err := cart.NewSelection(productID, &optionID)

		require.NoError(t, err)
		assert.True(t, selection.ProductID().IsEqual(productID))
		require.NotNil(t, selection.OptionID())
		assert.True(t, selection.OptionID().IsEqual(optionID))
	})

	t.Run("should reject an empty product id", func(t *testing.T) {
		_, err := cart.NewSelection(kernel.UUID{}, nil)

		require.Error(t, err)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var selection cart.Selection

		require.ErrorIs(t, selection.Validate(), cart.ErrSelectionIsNotConstructed)
	})
}

func TestSelection_Matches(t *testing.T) {
	productID := kernel.NewUUID()
	optionID := kernel.NewUUID()

	t.Run("should match same product and option regardless of quantity", func(t *testing.T) {
		selection, err := cart.NewSelection(productID, &optionID)
		require.NoError(t, err)

		assert.True(t, selection.Matches(mustLine(t, productID, &optionID, 7)))
	})

	t.Run("should distinguish option variants", func(t *testing.T) {
		selection, err := cart.NewSelection(productID, &optionID)
		require.NoError(t, err)
		optionless, err := cart.NewSelection(productID, nil)
		require.NoError(t, err)

		otherOption := kernel.NewUUID()
		assert.False(t, selection.Matches(mustLine(t, productID, &otherOption, 1)))
		assert.False(t, selection.Matches(mustLine(t, productID, nil, 1)))
		assert.False(t, optionless.Matches(mustLine(t, productID, &optionID, 1)))
	})
}

func TestCart_SelectLines(t *testing.T) {
	t.Run("should resolve selections to cart lines with their quantities", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		wanted := mustLine(t, kernel.NewUUID(), nil, 3)
		other := mustLine(t, kernel.NewUUID(), nil, 1)
		require.NoError(t, c.AddLine(wanted))
		require.NoError(t, c.AddLine(other))

		selected, err := c.SelectLines([]cart.Selection{mustSelection(t, wanted)})

		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.True(t, selected[0].MatchesSelection(wanted))
		assert.Equal(t, 3, selected[0].Quantity())
	})

	t.Run("should collapse duplicate selections", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		wanted := mustLine(t, kernel.NewUUID(), nil, 2)
		require.NoError(t, c.AddLine(wanted))

		selected, err := c.SelectLines([]cart.Selection{
			mustSelection(t, wanted), mustSelection(t, wanted),
		})

		require.NoError(t, err)
		assert.Len(t, selected, 1)
	})

	t.Run("should fail when a selection is not in the cart", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, c.AddLine(mustLine(t, kernel.NewUUID(), nil, 1)))

		_, err = c.SelectLines([]cart.Selection{
			mustSelection(t, mustLine(t, kernel.NewUUID(), nil, 1)),
		})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed selection", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)

		_, err = c.SelectLines([]cart.Selection{{}})

		require.Error(t, err)
		require.ErrorIs(t, err, cart.ErrSelectionIsNotConstructed)
	})
}

func TestCart_RemoveMatching(t *testing.T) {
	t.Run("should remove only purchased selections", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		bought := mustLine(t, kernel.NewUUID(), nil, 1)
		kept := mustLine(t, kernel.NewUUID(), nil, 2)
		require.NoError(t, c.AddLine(bought))
		require.NoError(t, c.AddLine(kept))

		require.NoError(t, c.RemoveMatching([]cart.Line{bought}))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.True(t, lines[0].MatchesSelection(kept))
	})

	t.Run("should ignore selections the cart does not hold", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		kept := mustLine(t, kernel.NewUUID(), nil, 2)
		require.NoError(t, c.AddLine(kept))

		require.NoError(t, c.RemoveMatching([]cart.Line{mustLine(t, kernel.NewUUID(), nil, 1)}))

		assert.Len(t, c.Lines(), 1)
	})

	t.Run("should empty the cart when everything was purchased", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID())
		require.NoError(t, err)
		bought := mustLine(t, kernel.NewUUID(), nil, 1)
		require.NoError(t, c.AddLine(bought))

		require.NoError(t, c.RemoveMatching([]cart.Line{bought}))

		assert.True(t, c.IsEmpty())
	})
}

func TestRestoreCart(t *testing.T) {
	t.Run("should restore lines", func(t *testing.T) {
		userID := kernel.NewUUID()
		lines := []cart.Line{
			mustLine(t, kernel.NewUUID(), nil, 1),
			mustLine(t, kernel.NewUUID(), nil, 2),
		}

		c, err := cart.RestoreCart(userID, lines)

		require.NoError(t, err)
		assert.True(t, c.UserID().IsEqual(userID))
		assert.Len(t, c.Lines(), 2)
	})
}
