package feeddef

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"atomfeed/pkg/atom"
)

// FieldError locates a build failure inside a definition, e.g.
// "entries[1].links[0].href".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(path string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Path: path, Err: err}
}

// constructErr places a NewFeed/NewEntry failure at the field it names.
func constructErr(path string, err error) error {
	field := "id"
	var ve *atom.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		field = ve.Field
	}
	return fieldErr(join(path, field), err)
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// Build converts the definition into a feed. The first invalid field is
// reported as a *FieldError wrapping the pkg/atom validation error.
func (d *Definition) Build() (*atom.Feed, error) {
	return d.build("", true)
}

func (d *Definition) build(path string, withEntries bool) (*atom.Feed, error) {
	title, err := d.Title.build()
	if err != nil {
		return nil, fieldErr(join(path, "title"), err)
	}
	updated, err := parseTime(d.Updated)
	if err != nil {
		return nil, fieldErr(join(path, "updated"), err)
	}
	f, err := atom.NewFeed(d.ID, title, updated)
	if err != nil {
		return nil, constructErr(path, err)
	}

	if d.Subtitle != nil {
		t, err := d.Subtitle.build()
		if err != nil {
			return nil, fieldErr(join(path, "subtitle"), err)
		}
		_ = f.SetSubtitle(t)
	}
	if d.Rights != nil {
		t, err := d.Rights.build()
		if err != nil {
			return nil, fieldErr(join(path, "rights"), err)
		}
		_ = f.SetRights(t)
	}
	if d.Icon != "" {
		if err := f.SetIcon(d.Icon); err != nil {
			return nil, fieldErr(join(path, "icon"), err)
		}
	}
	if d.Logo != "" {
		if err := f.SetLogo(d.Logo); err != nil {
			return nil, fieldErr(join(path, "logo"), err)
		}
	}
	if d.Generator != nil {
		g, err := d.Generator.build()
		if err != nil {
			return nil, fieldErr(join(path, "generator"), err)
		}
		_ = f.SetGenerator(g)
	}

	if err := addPeople(join(path, "authors"), d.Authors, f.AddAuthor); err != nil {
		return nil, err
	}
	if err := addPeople(join(path, "contributors"), d.Contributors, f.AddContributor); err != nil {
		return nil, err
	}
	if err := addLinks(join(path, "links"), d.Links, f.AddLink); err != nil {
		return nil, err
	}
	if err := addCategories(join(path, "categories"), d.Categories, f.AddCategory); err != nil {
		return nil, err
	}

	if !withEntries {
		if len(d.Entries) > 0 {
			return nil, fieldErr(join(path, "entries"), fmt.Errorf("%w: a source cannot carry entries", atom.ErrInvalidInput))
		}
		return f, nil
	}
	for i := range d.Entries {
		p := index(join(path, "entries"), i)
		e, err := d.Entries[i].build(p)
		if err != nil {
			return nil, err
		}
		_ = f.AddEntry(e)
	}
	return f, nil
}

func (d *Entry) build(path string) (*atom.Entry, error) {
	title, err := d.Title.build()
	if err != nil {
		return nil, fieldErr(join(path, "title"), err)
	}
	updated, err := parseTime(d.Updated)
	if err != nil {
		return nil, fieldErr(join(path, "updated"), err)
	}
	e, err := atom.NewEntry(d.ID, title, updated)
	if err != nil {
		return nil, constructErr(path, err)
	}

	if d.Published != "" {
		published, err := parseTime(d.Published)
		if err != nil {
			return nil, fieldErr(join(path, "published"), err)
		}
		_ = e.SetPublished(published)
	}
	if d.Summary != nil {
		t, err := d.Summary.build()
		if err != nil {
			return nil, fieldErr(join(path, "summary"), err)
		}
		_ = e.SetSummary(t)
	}
	if d.Rights != nil {
		t, err := d.Rights.build()
		if err != nil {
			return nil, fieldErr(join(path, "rights"), err)
		}
		_ = e.SetRights(t)
	}
	if d.Content != nil {
		c, err := d.Content.build()
		if err != nil {
			return nil, fieldErr(join(path, "content"), err)
		}
		_ = e.SetContent(c)
	}

	if err := addPeople(join(path, "authors"), d.Authors, e.AddAuthor); err != nil {
		return nil, err
	}
	if err := addPeople(join(path, "contributors"), d.Contributors, e.AddContributor); err != nil {
		return nil, err
	}
	if err := addLinks(join(path, "links"), d.Links, e.AddLink); err != nil {
		return nil, err
	}
	if err := addCategories(join(path, "categories"), d.Categories, e.AddCategory); err != nil {
		return nil, err
	}

	if d.Source != nil {
		src, err := d.Source.build(join(path, "source"), false)
		if err != nil {
			return nil, err
		}
		_ = e.SetSource(src)
	}
	return e, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp is required", atom.ErrInvalidInput)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an RFC 3339 timestamp", atom.ErrInvalidInput, s)
	}
	return t, nil
}

func (t Text) build() (*atom.Text, error) {
	typ, err := atom.ParseTextType(t.Type)
	if err != nil {
		return nil, err
	}
	return atom.NewTextOfType(t.Value, typ)
}

func (p Person) build() (*atom.Person, error) {
	out, err := atom.NewPerson(p.Name)
	if err != nil {
		return nil, err
	}
	if p.URI != "" {
		if err := out.SetURI(p.URI); err != nil {
			return nil, err
		}
	}
	if p.Email != "" {
		if err := out.SetEmail(p.Email); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (l Link) build() (*atom.Link, error) {
	out, err := atom.NewLink(l.Href)
	if err != nil {
		return nil, err
	}
	if l.Rel != "" {
		if err := out.SetRel(l.Rel); err != nil {
			return nil, err
		}
	}
	if l.Type != "" {
		if err := out.SetType(l.Type); err != nil {
			return nil, err
		}
	}
	if l.Hreflang != "" {
		if err := out.SetHreflang(l.Hreflang); err != nil {
			return nil, err
		}
	}
	if l.Title != "" {
		if err := out.SetTitle(l.Title); err != nil {
			return nil, err
		}
	}
	if l.Length != nil {
		if err := out.SetLength(*l.Length); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c Category) build() (*atom.Category, error) {
	out, err := atom.NewCategory(c.Term)
	if err != nil {
		return nil, err
	}
	if c.Scheme != "" {
		if err := out.SetScheme(c.Scheme); err != nil {
			return nil, err
		}
	}
	if c.Label != "" {
		if err := out.SetLabel(c.Label); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g Generator) build() (*atom.Generator, error) {
	out, err := atom.NewGenerator(g.Name)
	if err != nil {
		return nil, err
	}
	if g.URI != "" {
		if err := out.SetURI(g.URI); err != nil {
			return nil, err
		}
	}
	if g.Version != "" {
		if err := out.SetVersion(g.Version); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c Content) build() (atom.Content, error) {
	if c.Src != "" {
		if c.Value != "" {
			return nil, fmt.Errorf("%w: content with src must be empty", atom.ErrInvalidInput)
		}
		out, err := atom.NewOutOfLineContent(c.Src)
		if err != nil {
			return nil, err
		}
		if c.Type != "" {
			if err := out.SetType(c.Type); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	switch c.Type {
	case "", "text", "plain":
		return atom.NewTextContent(c.Value), nil
	case "html":
		return atom.NewHTMLContent(c.Value), nil
	case "xhtml":
		out, err := atom.NewXHTMLContent(c.Value)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	switch c.Encoding {
	case "":
		return atom.NewOtherContent([]byte(c.Value), false, c.Type)
	case "base64":
		return atom.NewOtherContent([]byte(c.Value), true, c.Type)
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", atom.ErrInvalidInput, c.Encoding)
	}
}

func addPeople(path string, people []Person, add func(*atom.Person) error) error {
	for i, p := range people {
		out, err := p.build()
		if err != nil {
			return fieldErr(index(path, i), err)
		}
		_ = add(out)
	}
	return nil
}

func addLinks(path string, links []Link, add func(*atom.Link) error) error {
	for i, l := range links {
		out, err := l.build()
		if err != nil {
			return fieldErr(index(path, i), err)
		}
		_ = add(out)
	}
	return nil
}

func addCategories(path string, categories []Category, add func(*atom.Category) error) error {
	for i, c := range categories {
		out, err := c.build()
		if err != nil {
			return fieldErr(index(path, i), err)
		}
		_ = add(out)
	}
	return nil
}
