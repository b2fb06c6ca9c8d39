package input

// ModelContext implements the Context interface for the input handler. The
// model fills it from the current list and popup state before each key.
type ModelContext struct {
	RowID      int64
	Selected   int
	Bulk       bool
	Create     bool
	Choices    int
	SearchText string
}

// CurrentRowID returns the id under the cursor
func (c *ModelContext) CurrentRowID() int64 {
	return c.RowID
}

// HasSelection returns true if any rows are selected
func (c *ModelContext) HasSelection() bool {
	return c.Selected > 0
}

// SelectedCount returns the number of selected rows
func (c *ModelContext) SelectedCount() int {
	return c.Selected
}

func (c *ModelContext) HasBulkActions() bool { return c.Bulk }
func (c *ModelContext) CanCreate() bool      { return c.Create }
func (c *ModelContext) ChoiceCount() int     { return c.Choices }

// SearchTerm returns the search term shown when entering search mode
func (c *ModelContext) SearchTerm() string {
	return c.SearchText
}
