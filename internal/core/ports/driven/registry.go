package driven

// NormaliserRegistry selects the normaliser for a text format.
type NormaliserRegistry interface {
	// Get returns the normaliser for format.
	// Returns ErrUnsupportedType if none is registered.
	Get(format string) (Normaliser, error)

	// Register adds a normaliser to the registry, replacing any
	// normaliser already registered for the same format.
	Register(normaliser Normaliser)

	// Formats returns all registered formats.
	Formats() []string
}
