package atom

import "strconv"

// Registered link relations. Any other non-empty IRI is accepted as well.
const (
	RelAlternate = "alternate"
	RelEnclosure = "enclosure"
	RelRelated   = "related"
	RelSelf      = "self"
	RelVia       = "via"
)

// Link references a Web resource related to a feed or entry.
type Link struct {
	href      string
	rel       string
	mediaType string
	hreflang  string
	title     string
	length    int64
	hasLength bool
}

// NewLink returns a Link pointing at href.
func NewLink(href string) (*Link, error) {
	l := &Link{}
	if err := l.SetHref(href); err != nil {
		return nil, err
	}
	return l, nil
}

// NewAlternateLink returns a Link with rel="alternate".
func NewAlternateLink(href string) (*Link, error) {
	l, err := NewLink(href)
	if err != nil {
		return nil, err
	}
	l.rel = RelAlternate
	return l, nil
}

func (l *Link) Href() string { return l.href }

func (l *Link) SetHref(href string) error {
	if err := requireNonEmpty("href", href); err != nil {
		return err
	}
	l.href = href
	return nil
}

func (l *Link) HasRel() bool { return l.rel != "" }

func (l *Link) Rel() (string, error) {
	if !l.HasRel() {
		return "", notPresent("rel")
	}
	return l.rel, nil
}

// SetRel stores a link relation, either a registered name or an IRI.
func (l *Link) SetRel(rel string) error {
	if err := requireNonEmpty("rel", rel); err != nil {
		return err
	}
	l.rel = rel
	return nil
}

func (l *Link) HasType() bool { return l.mediaType != "" }

// Type returns the advisory media type of the linked resource.
func (l *Link) Type() (string, error) {
	if !l.HasType() {
		return "", notPresent("type")
	}
	return l.mediaType, nil
}

func (l *Link) SetType(mediaType string) error {
	if err := requireMediaType("type", mediaType); err != nil {
		return err
	}
	l.mediaType = mediaType
	return nil
}

// HasHreflang reports whether a language tag is set. Only tags that passed
// validation are ever stored, so a non-empty value is sufficient.
func (l *Link) HasHreflang() bool { return l.hreflang != "" }

func (l *Link) Hreflang() (string, error) {
	if !l.HasHreflang() {
		return "", notPresent("hreflang")
	}
	return l.hreflang, nil
}

func (l *Link) SetHreflang(tag string) error {
	if !IsLanguageTag(tag) {
		return invalid("hreflang", tag, "must be a language tag such as en or en-US")
	}
	l.hreflang = tag
	return nil
}

func (l *Link) HasTitle() bool { return l.title != "" }

func (l *Link) Title() (string, error) {
	if !l.HasTitle() {
		return "", notPresent("title")
	}
	return l.title, nil
}

func (l *Link) SetTitle(title string) error {
	if err := requireNonEmpty("title", title); err != nil {
		return err
	}
	l.title = title
	return nil
}

func (l *Link) HasLength() bool { return l.hasLength }

// Length returns the advisory size of the linked content in octets.
func (l *Link) Length() (int64, error) {
	if !l.hasLength {
		return 0, notPresent("length")
	}
	return l.length, nil
}

func (l *Link) SetLength(length int64) error {
	if length < 0 {
		return invalid("length", strconv.FormatInt(length, 10), "must not be negative")
	}
	l.length = length
	l.hasLength = true
	return nil
}

// Clone returns an independent copy.
func (l *Link) Clone() *Link {
	c := *l
	return &c
}

func (l *Link) element() *xmlLink {
	x := &xmlLink{
		Href:     l.href,
		Rel:      l.rel,
		Type:     l.mediaType,
		Hreflang: l.hreflang,
		Title:    l.title,
	}
	if l.hasLength {
		x.Length = strconv.FormatInt(l.length, 10)
	}
	return x
}
