package atom

import "time"

// Entry is a single item of a feed.
type Entry struct {
	collections

	id      string
	title   *Text
	updated time.Time

	content   Content
	summary   *Text
	published time.Time
	rights    *Text
	source    *Feed
}

// NewEntry returns an Entry with its required id, title and updated timestamp.
func NewEntry(id string, title *Text, updated time.Time) (*Entry, error) {
	e := &Entry{}
	if err := e.SetID(id); err != nil {
		return nil, err
	}
	if err := e.SetTitle(title); err != nil {
		return nil, err
	}
	if err := e.SetUpdated(updated); err != nil {
		return nil, err
	}
	return e, nil
}

// ID returns the permanent, universally unique identifier of the entry.
func (e *Entry) ID() string { return e.id }

func (e *Entry) SetID(id string) error {
	if err := requireNonEmpty("id", id); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) Title() *Text { return e.title }

func (e *Entry) SetTitle(title *Text) error {
	if title == nil {
		return invalid("title", "", "must not be nil")
	}
	e.title = title
	return nil
}

// Updated returns the last time the entry was modified in a significant way.
func (e *Entry) Updated() time.Time { return e.updated }

func (e *Entry) SetUpdated(updated time.Time) error {
	if err := requireTime("updated", updated); err != nil {
		return err
	}
	e.updated = updated
	return nil
}

func (e *Entry) HasContent() bool { return e.content != nil }

func (e *Entry) Content() (Content, error) {
	if e.content == nil {
		return nil, notPresent("content")
	}
	return e.content, nil
}

func (e *Entry) SetContent(content Content) error {
	if content == nil {
		return invalid("content", "", "must not be nil")
	}
	e.content = content
	return nil
}

func (e *Entry) HasSummary() bool { return e.summary != nil }

func (e *Entry) Summary() (*Text, error) {
	if e.summary == nil {
		return nil, notPresent("summary")
	}
	return e.summary, nil
}

func (e *Entry) SetSummary(summary *Text) error {
	if summary == nil {
		return invalid("summary", "", "must not be nil")
	}
	e.summary = summary
	return nil
}

func (e *Entry) HasPublished() bool { return !e.published.IsZero() }

// Published returns the time of the initial creation or first availability of the entry.
func (e *Entry) Published() (time.Time, error) {
	if e.published.IsZero() {
		return time.Time{}, notPresent("published")
	}
	return e.published, nil
}

func (e *Entry) SetPublished(published time.Time) error {
	if err := requireTime("published", published); err != nil {
		return err
	}
	e.published = published
	return nil
}

func (e *Entry) HasRights() bool { return e.rights != nil }

func (e *Entry) Rights() (*Text, error) {
	if e.rights == nil {
		return nil, notPresent("rights")
	}
	return e.rights, nil
}

func (e *Entry) SetRights(rights *Text) error {
	if rights == nil {
		return invalid("rights", "", "must not be nil")
	}
	e.rights = rights
	return nil
}

func (e *Entry) HasSource() bool { return e.source != nil }

// Source returns the metadata of the feed this entry was copied from.
func (e *Entry) Source() (*Feed, error) {
	if e.source == nil {
		return nil, notPresent("source")
	}
	return e.source, nil
}

// SetSource records the originating feed. The entry does not own it; only
// the feed's metadata is rendered, never its entries.
func (e *Entry) SetSource(source *Feed) error {
	if source == nil {
		return invalid("source", "", "must not be nil")
	}
	e.source = source
	return nil
}

func (e *Entry) element() *xmlEntry {
	x := &xmlEntry{
		ID:           e.id,
		Title:        e.title.element(),
		Updated:      formatTime(e.updated),
		Authors:      personElements(e.authors.items),
		Links:        linkElements(e.links.items),
		Categories:   categoryElements(e.categories.items),
		Contributors: personElements(e.contributors.items),
	}
	if e.content != nil {
		x.Content = e.content.element()
	}
	if e.summary != nil {
		x.Summary = e.summary.element()
	}
	if e.HasPublished() {
		x.Published = formatTime(e.published)
	}
	if e.rights != nil {
		x.Rights = e.rights.element()
	}
	if e.source != nil {
		x.Source = &xmlSource{xmlHead: e.source.head()}
	}
	return x
}
