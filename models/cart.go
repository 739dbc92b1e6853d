package models

import "time"

// CartLine is a single (menu item, quantity) pair in a user's cart.
// Price may legitimately be zero under token pricing.
type CartLine struct {
	ItemID   string  `json:"itemId" bson:"itemId"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Cart holds at most one line per distinct itemId. It is persisted per user
// and stays authoritative in memory for the session even if a save fails.
type Cart struct {
	UserID    string     `json:"userId" bson:"userId"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// AddLine increments the quantity of an existing line or appends a new one
// with quantity 1.
func (c *Cart) AddLine(item MenuItem) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.MenuID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ItemID:   item.MenuID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// SetQuantity sets the quantity for itemID. Zero or negative removes the line.
func (c *Cart) SetQuantity(itemID string, q int) {
	if q <= 0 {
		c.RemoveLine(itemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = q
			return
		}
	}
}

// RemoveLine removes the line for itemID if present. No-op otherwise.
func (c *Cart) RemoveLine(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalItemCount is the sum of quantities across all lines.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Total is the monetary total across all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}
