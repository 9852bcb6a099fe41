package atom

import "encoding/base64"

// Content is the body of an entry. It is implemented only by the four
// variants in this package: TextContent, XHTMLContent, OtherContent and
// OutOfLineContent.
type Content interface {
	// HasType reports whether a type attribute value is available.
	HasType() bool
	// Type returns the content type: text, html, xhtml or a media type.
	Type() (string, error)

	element() *xmlContent
}

var (
	_ Content = (*TextContent)(nil)
	_ Content = (*XHTMLContent)(nil)
	_ Content = (*OtherContent)(nil)
	_ Content = (*OutOfLineContent)(nil)
)

// TextContent is inline plain text or escaped HTML.
type TextContent struct {
	content string
	typ     TextType
}

// NewTextContent returns plain inline content.
func NewTextContent(content string) *TextContent {
	return &TextContent{content: content, typ: TextPlain}
}

// NewHTMLContent returns inline HTML content.
func NewHTMLContent(markup string) *TextContent {
	return &TextContent{content: markup, typ: TextHTML}
}

func (c *TextContent) Content() string { return c.content }

func (c *TextContent) SetContent(content string) {
	c.content = content
}

func (c *TextContent) HasType() bool { return true }

func (c *TextContent) Type() (string, error) { return string(c.typ), nil }

// SetType switches between text and html. xhtml needs XHTMLContent.
func (c *TextContent) SetType(typ TextType) error {
	if typ != TextPlain && typ != TextHTML {
		return invalid("type", string(typ), "must be text or html")
	}
	c.typ = typ
	return nil
}

func (c *TextContent) element() *xmlContent {
	x := &xmlContent{Value: c.content}
	if c.typ != TextPlain {
		x.Type = string(c.typ)
	}
	return x
}

// XHTMLContent is a single inline XHTML div element, written to the
// document as-is. It is checked for well-formedness on assignment.
type XHTMLContent struct {
	content string
}

// NewXHTMLContent returns inline XHTML content. div must be exactly one
// well-formed div element.
func NewXHTMLContent(div string) (*XHTMLContent, error) {
	c := &XHTMLContent{}
	if err := c.SetContent(div); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *XHTMLContent) Content() string { return c.content }

func (c *XHTMLContent) SetContent(div string) error {
	if err := requireXHTMLDiv("content", div); err != nil {
		return err
	}
	c.content = div
	return nil
}

func (c *XHTMLContent) HasType() bool { return true }

func (c *XHTMLContent) Type() (string, error) { return string(TextXHTML), nil }

// SetType only accepts xhtml; the type of XHTML content is fixed.
func (c *XHTMLContent) SetType(typ TextType) error {
	if typ != TextXHTML {
		return invalid("type", string(typ), "xhtml content type is fixed to xhtml")
	}
	return nil
}

func (c *XHTMLContent) element() *xmlContent {
	return &xmlContent{Type: string(TextXHTML), Inner: c.content}
}

// OtherContent is an inline payload of any media type, stored base64-encoded.
type OtherContent struct {
	encoded   string
	mediaType string
}

// NewOtherContent returns inline content of the given media type. When
// isBase64Encoded is true payload is taken as already-encoded text.
func NewOtherContent(payload []byte, isBase64Encoded bool, mediaType string) (*OtherContent, error) {
	c := &OtherContent{}
	if err := c.SetType(mediaType); err != nil {
		return nil, err
	}
	if err := c.SetContent(payload, isBase64Encoded); err != nil {
		return nil, err
	}
	return c, nil
}

// SetContent replaces the payload. An already-encoded payload must be valid
// standard base64.
func (c *OtherContent) SetContent(payload []byte, isBase64Encoded bool) error {
	if !isBase64Encoded {
		c.encoded = base64.StdEncoding.EncodeToString(payload)
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(string(payload)); err != nil {
		return invalid("content", "", "payload is not valid base64")
	}
	c.encoded = string(payload)
	return nil
}

// Content returns the payload, decoded when base64Decode is true.
func (c *OtherContent) Content(base64Decode bool) ([]byte, error) {
	if !base64Decode {
		return []byte(c.encoded), nil
	}
	return base64.StdEncoding.DecodeString(c.encoded)
}

func (c *OtherContent) HasType() bool { return c.mediaType != "" }

func (c *OtherContent) Type() (string, error) {
	if !c.HasType() {
		return "", notPresent("type")
	}
	return c.mediaType, nil
}

func (c *OtherContent) SetType(mediaType string) error {
	if err := requireMediaType("type", mediaType); err != nil {
		return err
	}
	c.mediaType = mediaType
	return nil
}

func (c *OtherContent) element() *xmlContent {
	return &xmlContent{Type: c.mediaType, Value: c.encoded}
}

// OutOfLineContent references content by IRI instead of embedding it.
type OutOfLineContent struct {
	src       string
	mediaType string
}

// NewOutOfLineContent returns content located at src.
func NewOutOfLineContent(src string) (*OutOfLineContent, error) {
	c := &OutOfLineContent{}
	if err := c.SetSrc(src); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *OutOfLineContent) Src() string { return c.src }

func (c *OutOfLineContent) SetSrc(src string) error {
	if err := requireNonEmpty("src", src); err != nil {
		return err
	}
	c.src = src
	return nil
}

func (c *OutOfLineContent) HasType() bool { return c.mediaType != "" }

func (c *OutOfLineContent) Type() (string, error) {
	if !c.HasType() {
		return "", notPresent("type")
	}
	return c.mediaType, nil
}

func (c *OutOfLineContent) SetType(mediaType string) error {
	if err := requireMediaType("type", mediaType); err != nil {
		return err
	}
	c.mediaType = mediaType
	return nil
}

func (c *OutOfLineContent) element() *xmlContent {
	return &xmlContent{Src: c.src, Type: c.mediaType}
}
