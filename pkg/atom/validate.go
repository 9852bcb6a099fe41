package atom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var (
	// mediaTypePattern matches a simplified RFC 4288 type/subtype pair.
	mediaTypePattern = regexp.MustCompile(`^[A-Za-z0-9!#$&.+\-^_]{1,127}/[A-Za-z0-9!#$&.+\-^_]{1,127}$`)

	// languageTagPattern matches a simplified RFC 3066 language tag.
	languageTagPattern = regexp.MustCompile(`^[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})?$`)
)

// IsMediaType reports whether s is a type/subtype MIME media type.
func IsMediaType(s string) bool {
	return mediaTypePattern.MatchString(s)
}

// IsLanguageTag reports whether s is a language tag such as "en" or "en-US".
func IsLanguageTag(s string) bool {
	return s != "" && languageTagPattern.MatchString(s)
}

// IsEmail reports whether s is a bare addr-spec that survives a parse round trip.
func IsEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// IsXHTMLDiv reports whether s is exactly one well-formed div element,
// optionally surrounded by whitespace and comments.
func IsXHTMLDiv(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 || t.Name.Local != "div" {
					return false
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return false
			}
		case xml.ProcInst, xml.Directive:
			return false
		}
	}
	return roots == 1 && depth == 0
}

func requireXHTMLDiv(field, value string) error {
	if !IsXHTMLDiv(value) {
		return invalid(field, value, "must be a single well-formed xhtml div element")
	}
	return nil
}

func requireNonEmpty(field, value string) error {
	if value == "" {
		return invalid(field, value, "must not be empty")
	}
	return nil
}

func requireMediaType(field, value string) error {
	if !IsMediaType(value) {
		return invalid(field, value, "must be a type/subtype media type")
	}
	return nil
}

func requireTime(field string, t time.Time) error {
	if t.IsZero() {
		return invalid(field, "", "timestamp is required")
	}
	return nil
}
