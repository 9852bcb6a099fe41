package atom

// TextType is the value of the type attribute on Atom text constructs.
type TextType string

const (
	// TextPlain is the default; the type attribute is omitted when rendered.
	TextPlain TextType = "text"
	// TextHTML marks entity-escaped HTML markup.
	TextHTML TextType = "html"
	// TextXHTML marks a single inline XHTML div element. The content must be
	// well-formed; it is written to the document without escaping.
	TextXHTML TextType = "xhtml"
)

// ParseTextType maps a type name to a TextType. "plain" is accepted as an alias of "text".
func ParseTextType(s string) (TextType, error) {
	switch s {
	case "", "text", "plain":
		return TextPlain, nil
	case "html":
		return TextHTML, nil
	case "xhtml":
		return TextXHTML, nil
	}
	return "", invalid("type", s, "must be one of text, html, xhtml")
}

// Text is a human-readable construct used for title, subtitle, summary and rights.
type Text struct {
	text string
	typ  TextType
}

// NewText returns a plain Text. Any string, including the empty string, is accepted.
func NewText(text string) *Text {
	return &Text{text: text, typ: TextPlain}
}

// NewTextOfType returns a Text with an explicit type.
func NewTextOfType(text string, typ TextType) (*Text, error) {
	t := NewText(text)
	if err := t.SetType(typ); err != nil {
		return nil, err
	}
	return t, nil
}

// HTML returns a Text of type html.
func HTML(markup string) *Text {
	return &Text{text: markup, typ: TextHTML}
}

// Text returns the content.
func (t *Text) Text() string { return t.text }

// SetText replaces the content. For xhtml text the content must be a single
// well-formed div element.
func (t *Text) SetText(text string) error {
	if t.typ == TextXHTML {
		if err := requireXHTMLDiv("text", text); err != nil {
			return err
		}
	}
	t.text = text
	return nil
}

// Type returns the text type.
func (t *Text) Type() TextType { return t.typ }

// SetType changes the text type. Switching to xhtml requires the current
// content to be a single well-formed div element.
func (t *Text) SetType(typ TextType) error {
	switch typ {
	case TextPlain, TextHTML:
	case TextXHTML:
		if err := requireXHTMLDiv("text", t.text); err != nil {
			return err
		}
	default:
		return invalid("type", string(typ), "must be one of text, html, xhtml")
	}
	t.typ = typ
	return nil
}

// Clone returns an independent copy.
func (t *Text) Clone() *Text {
	c := *t
	return &c
}

func (t *Text) element() *xmlText {
	x := &xmlText{}
	if t.typ != TextPlain {
		x.Type = string(t.typ)
	}
	if t.typ == TextXHTML {
		x.Inner = t.text
	} else {
		x.Value = t.text
	}
	return x
}
