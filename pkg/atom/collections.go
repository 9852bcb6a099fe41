package atom

// collections holds the repeatable elements shared by Feed and Entry.
type collections struct {
	authors      orderedSet[Person]
	links        orderedSet[Link]
	categories   orderedSet[Category]
	contributors orderedSet[Person]
}

// AddAuthor attaches p. Attaching the same instance again is a no-op.
func (c *collections) AddAuthor(p *Person) error {
	if p == nil {
		return invalid("author", "", "must not be nil")
	}
	c.authors.add(p)
	return nil
}

// RemoveAuthor detaches p and reports whether it was attached.
func (c *collections) RemoveAuthor(p *Person) bool { return c.authors.remove(p) }

// Authors returns the attached authors in insertion order.
func (c *collections) Authors() []*Person { return c.authors.all() }

// AddLink attaches l. Attaching the same instance again is a no-op.
func (c *collections) AddLink(l *Link) error {
	if l == nil {
		return invalid("link", "", "must not be nil")
	}
	c.links.add(l)
	return nil
}

func (c *collections) RemoveLink(l *Link) bool { return c.links.remove(l) }

func (c *collections) Links() []*Link { return c.links.all() }

// AddCategory attaches cat. Attaching the same instance again is a no-op.
func (c *collections) AddCategory(cat *Category) error {
	if cat == nil {
		return invalid("category", "", "must not be nil")
	}
	c.categories.add(cat)
	return nil
}

func (c *collections) RemoveCategory(cat *Category) bool { return c.categories.remove(cat) }

func (c *collections) Categories() []*Category { return c.categories.all() }

// AddContributor attaches p. Attaching the same instance again is a no-op.
func (c *collections) AddContributor(p *Person) error {
	if p == nil {
		return invalid("contributor", "", "must not be nil")
	}
	c.contributors.add(p)
	return nil
}

func (c *collections) RemoveContributor(p *Person) bool { return c.contributors.remove(p) }

func (c *collections) Contributors() []*Person { return c.contributors.all() }

func personElements(people []*Person) []*xmlPerson {
	out := make([]*xmlPerson, 0, len(people))
	for _, p := range people {
		out = append(out, p.element())
	}
	return out
}

func linkElements(links []*Link) []*xmlLink {
	out := make([]*xmlLink, 0, len(links))
	for _, l := range links {
		out = append(out, l.element())
	}
	return out
}

func categoryElements(categories []*Category) []*xmlCategory {
	out := make([]*xmlCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.element())
	}
	return out
}
