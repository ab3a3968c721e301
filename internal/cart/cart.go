package cart

// Line is one pending selection in a cart: at most one line exists per
// item, and a line's quantity is always >= 1.
type Line struct {
	ItemID   uint    `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Store persists the full line set for one owner. Every cart mutation
// writes the whole set back, so a cart survives restarts; there is no
// expiry beyond an explicit Clear.
type Store interface {
	Load(ownerID string) ([]Line, error)
	Save(ownerID string, lines []Line) error
}

// Cart holds one user's pending selection before checkout. It does not
// know about item availability; callers gate that before AddItem.
type Cart struct {
	ownerID string
	store   Store
	lines   []Line
}

// Open loads the owner's persisted lines into a new Cart.
func Open(store Store, ownerID string) (*Cart, error) {
	lines, err := store.Load(ownerID)
	if err != nil {
		return nil, err
	}
	return &Cart{ownerID: ownerID, store: store, lines: lines}, nil
}

// AddItem merges the item into the cart: an existing line's quantity grows
// by one, otherwise a new line with quantity 1 is appended.
func (c *Cart) AddItem(itemID uint, name string, price float64) error {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++
			return c.persist()
		}
	}
	c.lines = append(c.lines, Line{ItemID: itemID, Name: name, Price: price, Quantity: 1})
	return c.persist()
}

// UpdateQuantity sets the line's quantity; a quantity <= 0 removes the
// line entirely, so no line ever persists with quantity below 1.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(itemID)
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
			return c.persist()
		}
	}
	return c.persist()
}

// RemoveItem deletes the line unconditionally; removing an absent item is
// not an error.
func (c *Cart) RemoveItem(itemID uint) error {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	return c.persist()
}

// Clear empties all lines.
func (c *Cart) Clear() error {
	c.lines = nil
	return c.persist()
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is recomputed from the current lines on every call; it is never
// stored, so it cannot drift from line edits.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) persist() error {
	return c.store.Save(c.ownerID, c.lines)
}
