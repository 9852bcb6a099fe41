package atom

import "time"

// Feed is the root of an Atom document.
type Feed struct {
	collections

	id      string
	title   *Text
	updated time.Time

	generator *Generator
	icon      string
	logo      string
	rights    *Text
	subtitle  *Text

	entries orderedSet[Entry]
}

// NewFeed returns a Feed with its required id, title and updated timestamp.
func NewFeed(id string, title *Text, updated time.Time) (*Feed, error) {
	f := &Feed{}
	if err := f.SetID(id); err != nil {
		return nil, err
	}
	if err := f.SetTitle(title); err != nil {
		return nil, err
	}
	if err := f.SetUpdated(updated); err != nil {
		return nil, err
	}
	return f, nil
}

// ID returns the permanent, universally unique identifier of the feed.
func (f *Feed) ID() string { return f.id }

func (f *Feed) SetID(id string) error {
	if err := requireNonEmpty("id", id); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Feed) Title() *Text { return f.title }

func (f *Feed) SetTitle(title *Text) error {
	if title == nil {
		return invalid("title", "", "must not be nil")
	}
	f.title = title
	return nil
}

// Updated returns the last time the feed was modified in a significant way.
func (f *Feed) Updated() time.Time { return f.updated }

func (f *Feed) SetUpdated(updated time.Time) error {
	if err := requireTime("updated", updated); err != nil {
		return err
	}
	f.updated = updated
	return nil
}

func (f *Feed) HasGenerator() bool { return f.generator != nil }

func (f *Feed) Generator() (*Generator, error) {
	if f.generator == nil {
		return nil, notPresent("generator")
	}
	return f.generator, nil
}

func (f *Feed) SetGenerator(g *Generator) error {
	if g == nil {
		return invalid("generator", "", "must not be nil")
	}
	f.generator = g
	return nil
}

func (f *Feed) HasIcon() bool { return f.icon != "" }

// Icon returns the IRI of a small square image for the feed.
func (f *Feed) Icon() (string, error) {
	if !f.HasIcon() {
		return "", notPresent("icon")
	}
	return f.icon, nil
}

func (f *Feed) SetIcon(icon string) error {
	if err := requireNonEmpty("icon", icon); err != nil {
		return err
	}
	f.icon = icon
	return nil
}

func (f *Feed) HasLogo() bool { return f.logo != "" }

// Logo returns the IRI of a 2:1 image for the feed.
func (f *Feed) Logo() (string, error) {
	if !f.HasLogo() {
		return "", notPresent("logo")
	}
	return f.logo, nil
}

func (f *Feed) SetLogo(logo string) error {
	if err := requireNonEmpty("logo", logo); err != nil {
		return err
	}
	f.logo = logo
	return nil
}

func (f *Feed) HasRights() bool { return f.rights != nil }

func (f *Feed) Rights() (*Text, error) {
	if f.rights == nil {
		return nil, notPresent("rights")
	}
	return f.rights, nil
}

func (f *Feed) SetRights(rights *Text) error {
	if rights == nil {
		return invalid("rights", "", "must not be nil")
	}
	f.rights = rights
	return nil
}

func (f *Feed) HasSubtitle() bool { return f.subtitle != nil }

func (f *Feed) Subtitle() (*Text, error) {
	if f.subtitle == nil {
		return nil, notPresent("subtitle")
	}
	return f.subtitle, nil
}

func (f *Feed) SetSubtitle(subtitle *Text) error {
	if subtitle == nil {
		return invalid("subtitle", "", "must not be nil")
	}
	f.subtitle = subtitle
	return nil
}

// AddEntry appends e. Adding the same instance again is a no-op.
func (f *Feed) AddEntry(e *Entry) error {
	if e == nil {
		return invalid("entry", "", "must not be nil")
	}
	f.entries.add(e)
	return nil
}

// RemoveEntry detaches e and reports whether it was attached.
func (f *Feed) RemoveEntry(e *Entry) bool { return f.entries.remove(e) }

// Entries returns the entries in insertion order.
func (f *Feed) Entries() []*Entry { return f.entries.all() }

// head builds the feed-level metadata shared by <feed> and <source>.
func (f *Feed) head() xmlHead {
	h := xmlHead{
		ID:           f.id,
		Title:        f.title.element(),
		Updated:      formatTime(f.updated),
		Authors:      personElements(f.authors.items),
		Links:        linkElements(f.links.items),
		Categories:   categoryElements(f.categories.items),
		Contributors: personElements(f.contributors.items),
		Icon:         f.icon,
		Logo:         f.logo,
	}
	if f.generator != nil {
		h.Generator = f.generator.element()
	}
	if f.rights != nil {
		h.Rights = f.rights.element()
	}
	if f.subtitle != nil {
		h.Subtitle = f.subtitle.element()
	}
	return h
}

func (f *Feed) element() *xmlFeed {
	x := &xmlFeed{
		Xmlns:   Namespace,
		xmlHead: f.head(),
		Entries: make([]*xmlEntry, 0, f.entries.len()),
	}
	for _, e := range f.entries.items {
		x.Entries = append(x.Entries, e.element())
	}
	return x
}
