package atom

// Category classifies a feed or entry.
type Category struct {
	term   string
	scheme string
	label  string
}

// NewCategory returns a Category with the given term.
func NewCategory(term string) (*Category, error) {
	c := &Category{}
	if err := c.SetTerm(term); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Term() string { return c.term }

func (c *Category) SetTerm(term string) error {
	if err := requireNonEmpty("term", term); err != nil {
		return err
	}
	c.term = term
	return nil
}

func (c *Category) HasScheme() bool { return c.scheme != "" }

// Scheme returns the IRI identifying the categorization scheme.
func (c *Category) Scheme() (string, error) {
	if !c.HasScheme() {
		return "", notPresent("scheme")
	}
	return c.scheme, nil
}

func (c *Category) SetScheme(scheme string) error {
	if err := requireNonEmpty("scheme", scheme); err != nil {
		return err
	}
	c.scheme = scheme
	return nil
}

func (c *Category) HasLabel() bool { return c.label != "" }

// Label returns the human-readable label.
func (c *Category) Label() (string, error) {
	if !c.HasLabel() {
		return "", notPresent("label")
	}
	return c.label, nil
}

func (c *Category) SetLabel(label string) error {
	if err := requireNonEmpty("label", label); err != nil {
		return err
	}
	c.label = label
	return nil
}

// Clone returns an independent copy.
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}

func (c *Category) element() *xmlCategory {
	return &xmlCategory{Term: c.term, Scheme: c.scheme, Label: c.label}
}
