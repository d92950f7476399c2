package domain

// Outline is what a requirement source produces: a flat, ordered list of
// items each carrying the depth at which it sits in the specification tree.
type Outline struct {
	// Name is a suggested specification name (e.g. a Doorstop prefix).
	Name string

	// Items are the requirements in document order.
	Items []OutlineItem
}

// OutlineItem is one requirement read from a source.
type OutlineItem struct {
	// ID becomes the requirement identifier.
	ID string

	// Title becomes the requirement display name.
	Title string

	// Text is the requirement body in the source's text format.
	Text string

	// Depth is the hierarchy depth (0 = top level).
	Depth int

	// LastChange is optional; the export clock fills it when empty.
	LastChange string

	// Origin describes where the item came from (file path, row id).
	Origin string
}

// HierarchyID returns the identifier used for the item's hierarchy node.
func (i OutlineItem) HierarchyID() string {
	return "SH-" + i.ID
}
