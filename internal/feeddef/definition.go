// Package feeddef loads Atom feed definitions written in YAML and builds
// them into pkg/atom feeds.
//
// A definition mirrors the Atom model one to one:
//
//	id: urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6
//	title: Example Feed
//	updated: 2024-01-02T03:04:05Z
//	authors:
//	  - name: John Doe
//	links:
//	  - href: http://example.org/
//	entries:
//	  - id: urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a
//	    title: {type: html, value: "<b>Atom</b> draft"}
//	    updated: 2024-01-02T03:04:05Z
//	    content: {type: xhtml, value: '<div xmlns="http://www.w3.org/1999/xhtml">Hi</div>'}
package feeddef

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML form of an Atom feed.
type Definition struct {
	ID           string     `yaml:"id"`
	Title        Text       `yaml:"title"`
	Updated      string     `yaml:"updated"`
	Subtitle     *Text      `yaml:"subtitle,omitempty"`
	Rights       *Text      `yaml:"rights,omitempty"`
	Icon         string     `yaml:"icon,omitempty"`
	Logo         string     `yaml:"logo,omitempty"`
	Generator    *Generator `yaml:"generator,omitempty"`
	Authors      []Person   `yaml:"authors,omitempty"`
	Contributors []Person   `yaml:"contributors,omitempty"`
	Links        []Link     `yaml:"links,omitempty"`
	Categories   []Category `yaml:"categories,omitempty"`
	Entries      []Entry    `yaml:"entries,omitempty"`
}

// Entry is the YAML form of an Atom entry.
type Entry struct {
	ID           string      `yaml:"id"`
	Title        Text        `yaml:"title"`
	Updated      string      `yaml:"updated"`
	Published    string      `yaml:"published,omitempty"`
	Summary      *Text       `yaml:"summary,omitempty"`
	Rights       *Text       `yaml:"rights,omitempty"`
	Content      *Content    `yaml:"content,omitempty"`
	Authors      []Person    `yaml:"authors,omitempty"`
	Contributors []Person    `yaml:"contributors,omitempty"`
	Links        []Link      `yaml:"links,omitempty"`
	Categories   []Category  `yaml:"categories,omitempty"`
	Source       *Definition `yaml:"source,omitempty"`
}

// Text is a text construct. A plain scalar is shorthand for a text of type "text".
type Text struct {
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value"`
}

// UnmarshalYAML accepts either a scalar or a {type, value} mapping.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Type = ""
		return node.Decode(&t.Value)
	}
	if err := checkKeys(node, "text", "type", "value"); err != nil {
		return err
	}
	type plain Text
	return node.Decode((*plain)(t))
}

// checkKeys rejects unknown keys in a mapping node. node.Decode does not
// inherit the decoder's KnownFields setting.
func checkKeys(node *yaml.Node, kind string, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: unknown %s field %q", key.Line, kind, key.Value)
		}
	}
	return nil
}

// Person is an author or contributor.
type Person struct {
	Name  string `yaml:"name"`
	URI   string `yaml:"uri,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Link is a reference from a feed or entry to a resource.
type Link struct {
	Href     string `yaml:"href"`
	Rel      string `yaml:"rel,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Hreflang string `yaml:"hreflang,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Length   *int64 `yaml:"length,omitempty"`
}

// Category classifies a feed or entry.
type Category struct {
	Term   string `yaml:"term"`
	Scheme string `yaml:"scheme,omitempty"`
	Label  string `yaml:"label,omitempty"`
}

// Generator identifies the agent that produced the feed.
type Generator struct {
	Name    string `yaml:"name"`
	URI     string `yaml:"uri,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Content is an entry body. The variant is chosen from its fields:
//
//   - src set: out-of-line content, Type is an optional media type
//   - type "", text or html: escaped text content
//   - type xhtml: an inline XHTML div
//   - any other media type: inline payload, base64-encoded on output.
//     With Encoding "base64" the value is taken as already encoded.
type Content struct {
	Type     string `yaml:"type,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Src      string `yaml:"src,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
}

// UnmarshalYAML accepts a scalar as shorthand for text content.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Content{}
		return node.Decode(&c.Value)
	}
	if err := checkKeys(node, "content", "type", "value", "src", "encoding"); err != nil {
		return err
	}
	type plain Content
	return node.Decode((*plain)(c))
}
