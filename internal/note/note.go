package note

// Palette is the fixed set of color tags a note can carry, in display order.
var Palette = []string{"yellow", "green", "blue", "pink", "purple"}

// DefaultColor is used when a note is created without an explicit color.
const DefaultColor = "yellow"

// Note is a single notes-list entry. Category is a free-form string: it is
// drawn from the configured note categories at creation time but never
// re-validated afterwards, so a category removed from settings stays a valid
// display value on old notes.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
	Color     string `json:"color"`
}
