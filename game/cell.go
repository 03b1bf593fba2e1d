package game

// Cell represents a spatial partition cell containing enemies
type Cell struct {
	// Enemies in this cell (preallocated slice)
	Enemies []*Enemy

	// Current count of enemies
	Count int
}

// NewCell creates a new cell with preallocated storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{
		Enemies: make([]*Enemy, 0, initialCapacity),
	}
}

// Add adds an enemy to this cell
func (c *Cell) Add(e *Enemy) {
	for i := 0; i < c.Count; i++ {
		if c.Enemies[i] == e {
			return
		}
	}

	if c.Count < len(c.Enemies) {
		c.Enemies[c.Count] = e
	} else {
		c.Enemies = append(c.Enemies, e)
	}
	c.Count++
}

// Clear removes all enemies from the cell (but keeps capacity)
func (c *Cell) Clear() {
	for i := 0; i < c.Count; i++ {
		c.Enemies[i] = nil
	}
	c.Count = 0
}
