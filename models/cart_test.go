package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(id string, price float64) MenuItem {
	return MenuItem{MenuID: id, Name: "Item " + id, Price: price, Available: true}
}

func TestCartAddLineMergesDuplicates(t *testing.T) {
	var c Cart

	c.AddLine(item("m1", 50))
	c.AddLine(item("m1", 50))
	c.AddLine(item("m2", 80))

	assert.Len(t, c.Lines, 2, "one line per distinct item")
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
	assert.Equal(t, 3, c.TotalItemCount())
	assert.Equal(t, 180.0, c.Total())
}

func TestCartSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantCount int
	}{
		{"positive_sets_quantity", 5, 1, 5},
		{"zero_removes_line", 0, 0, 0},
		{"negative_removes_line", -3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			c.AddLine(item("m1", 50))

			c.SetQuantity("m1", tt.quantity)

			assert.Len(t, c.Lines, tt.wantLines)
			assert.Equal(t, tt.wantCount, c.TotalItemCount())
		})
	}
}

func TestCartSetQuantityUnknownItemIsNoop(t *testing.T) {
	var c Cart
	c.AddLine(item("m1", 50))

	c.SetQuantity("missing", 4)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.TotalItemCount())
}

func TestCartRemoveAndClear(t *testing.T) {
	var c Cart
	c.AddLine(item("m1", 50))
	c.AddLine(item("m2", 80))

	c.RemoveLine("m1")
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "m2", c.Lines[0].ItemID)

	c.RemoveLine("m1") // already gone
	assert.Len(t, c.Lines, 1)

	c.Clear()
	assert.Empty(t, c.Lines)
	assert.Equal(t, 0, c.TotalItemCount())
	assert.Equal(t, 0.0, c.Total())
}

func TestCartZeroPriceLinesCount(t *testing.T) {
	var c Cart
	c.AddLine(item("free", 0))
	c.AddLine(item("free", 0))

	assert.Equal(t, 2, c.TotalItemCount())
	assert.Equal(t, 0.0, c.Total())
}
