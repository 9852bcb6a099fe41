package atom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// Namespace is the Atom XML namespace declared on the root element.
const Namespace = "http://www.w3.org/2005/Atom"

// MediaType is the registered media type of Atom feed documents.
const MediaType = "application/atom+xml"

// TimeFormat is the RFC 3339 profile used for updated and published.
const TimeFormat = time.RFC3339

func formatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

type renderConfig struct {
	prefix string
	indent string
}

// RenderOption customises document formatting.
type RenderOption func(*renderConfig)

// WithIndent sets the per-line prefix and the indentation unit.
func WithIndent(prefix, indent string) RenderOption {
	return func(c *renderConfig) {
		c.prefix = prefix
		c.indent = indent
	}
}

// Compact disables pretty-printing.
func Compact() RenderOption {
	return WithIndent("", "")
}

// Render returns the feed as an indented UTF-8 Atom document.
func (f *Feed) Render() (string, error) {
	return f.RenderWith()
}

// RenderWith is Render with formatting options.
func (f *Feed) RenderWith(opts ...RenderOption) (string, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo writes the indented document to w.
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Encode writes the XML prolog followed by the feed element to w.
func (f *Feed) Encode(w io.Writer, opts ...RenderOption) error {
	cfg := renderConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent(cfg.prefix, cfg.indent)
	if err := enc.Encode(f.element()); err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}

// The types below mirror RFC 4287 element order; encoding/xml emits fields
// in declaration order and drops nil pointers and empty omitempty values.

type xmlText struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

type xmlPerson struct {
	Name  string `xml:"name"`
	URI   string `xml:"uri,omitempty"`
	Email string `xml:"email,omitempty"`
}

type xmlLink struct {
	Href     string `xml:"href,attr"`
	Rel      string `xml:"rel,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Hreflang string `xml:"hreflang,attr,omitempty"`
	Title    string `xml:"title,attr,omitempty"`
	Length   string `xml:"length,attr,omitempty"`
}

type xmlCategory struct {
	Term   string `xml:"term,attr"`
	Scheme string `xml:"scheme,attr,omitempty"`
	Label  string `xml:"label,attr,omitempty"`
}

type xmlGenerator struct {
	URI     string `xml:"uri,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type xmlContent struct {
	Type  string `xml:"type,attr,omitempty"`
	Src   string `xml:"src,attr,omitempty"`
	Value string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

type xmlHead struct {
	ID           string         `xml:"id"`
	Title        *xmlText       `xml:"title"`
	Updated      string         `xml:"updated"`
	Authors      []*xmlPerson   `xml:"author"`
	Links        []*xmlLink     `xml:"link"`
	Categories   []*xmlCategory `xml:"category"`
	Contributors []*xmlPerson   `xml:"contributor"`
	Generator    *xmlGenerator  `xml:"generator"`
	Icon         string         `xml:"icon,omitempty"`
	Logo         string         `xml:"logo,omitempty"`
	Rights       *xmlText       `xml:"rights"`
	Subtitle     *xmlText       `xml:"subtitle"`
}

type xmlFeed struct {
	XMLName xml.Name `xml:"feed"`
	Xmlns   string   `xml:"xmlns,attr"`
	xmlHead
	Entries []*xmlEntry `xml:"entry"`
}

type xmlSource struct {
	xmlHead
}

type xmlEntry struct {
	ID           string         `xml:"id"`
	Title        *xmlText       `xml:"title"`
	Updated      string         `xml:"updated"`
	Authors      []*xmlPerson   `xml:"author"`
	Content      *xmlContent    `xml:"content"`
	Links        []*xmlLink     `xml:"link"`
	Summary      *xmlText       `xml:"summary"`
	Categories   []*xmlCategory `xml:"category"`
	Contributors []*xmlPerson   `xml:"contributor"`
	Published    string         `xml:"published,omitempty"`
	Rights       *xmlText       `xml:"rights"`
	Source       *xmlSource     `xml:"source"`
}
