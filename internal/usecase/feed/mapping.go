package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"atomfeed/internal/domain/entity"
	"atomfeed/pkg/atom"
)

// SourcePath returns the route of the feed for one source.
func SourcePath(sourceID int64) string {
	return "/sources/" + strconv.FormatInt(sourceID, 10) + "/feed.atom"
}

// markupPattern matches an HTML tag or entity reference.
var markupPattern = regexp.MustCompile(`</?[A-Za-z][^>]*>|&(#[0-9]+|#x[0-9A-Fa-f]+|[A-Za-z][A-Za-z0-9]*);`)

// URNFor returns a stable urn:uuid identifier derived from an IRI.
func URNFor(iri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(iri)).URN()
}

// summaryText returns the article summary as html when it contains markup.
func summaryText(summary string) *atom.Text {
	if markupPattern.MatchString(summary) {
		return atom.HTML(summary)
	}
	return atom.NewText(summary)
}

// newEntry maps an article onto an Atom entry.
func newEntry(a *entity.Article) (*atom.Entry, error) {
	ts := a.Timestamp()
	e, err := atom.NewEntry(URNFor(a.URL), atom.NewText(a.Title), ts)
	if err != nil {
		return nil, err
	}
	if err := e.SetPublished(ts); err != nil {
		return nil, err
	}

	alt, err := atom.NewAlternateLink(a.URL)
	if err != nil {
		return nil, err
	}
	if err := alt.SetType("text/html"); err != nil {
		return nil, err
	}
	if err := e.AddLink(alt); err != nil {
		return nil, err
	}

	content, err := atom.NewOutOfLineContent(a.URL)
	if err != nil {
		return nil, err
	}
	if err := content.SetType("text/html"); err != nil {
		return nil, err
	}
	if err := e.SetContent(content); err != nil {
		return nil, err
	}

	if a.Summary != "" {
		if err := e.SetSummary(summaryText(a.Summary)); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// decorate applies the publisher-wide settings from cfg to f.
func (c Config) decorate(f *atom.Feed) error {
	if c.AuthorName != "" {
		author, err := c.author()
		if err != nil {
			return err
		}
		if err := f.AddAuthor(author); err != nil {
			return err
		}
	}
	if c.Rights != "" {
		if err := f.SetRights(atom.NewText(c.Rights)); err != nil {
			return err
		}
	}
	if c.GeneratorName != "" {
		gen, err := atom.NewGenerator(c.GeneratorName)
		if err != nil {
			return err
		}
		if c.GeneratorURI != "" {
			if err := gen.SetURI(c.GeneratorURI); err != nil {
				return err
			}
		}
		if c.GeneratorVersion != "" {
			if err := gen.SetVersion(c.GeneratorVersion); err != nil {
				return err
			}
		}
		if err := f.SetGenerator(gen); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) author() (*atom.Person, error) {
	p, err := atom.NewPerson(c.AuthorName)
	if err != nil {
		return nil, err
	}
	if c.AuthorEmail != "" {
		if err := p.SetEmail(c.AuthorEmail); err != nil {
			return nil, err
		}
	}
	if c.AuthorURI != "" {
		if err := p.SetURI(c.AuthorURI); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// selfLink returns a rel="self" link typed as an Atom document.
func selfLink(href string) (*atom.Link, error) {
	l, err := atom.NewLink(href)
	if err != nil {
		return nil, err
	}
	if err := l.SetRel(atom.RelSelf); err != nil {
		return nil, err
	}
	if err := l.SetType(atom.MediaType); err != nil {
		return nil, err
	}
	return l, nil
}

// sourceHead builds the metadata-only feed describing src: id, title,
// updated, self link, a via link to the upstream feed, and the source name
// as author.
func (c Config) sourceHead(src *entity.Source, fallback time.Time) (*atom.Feed, error) {
	updated := src.Updated()
	if updated.IsZero() {
		updated = fallback
	}
	selfURL := c.SourceURL(src.ID)
	f, err := atom.NewFeed(URNFor(selfURL), atom.NewText(src.Name), updated)
	if err != nil {
		return nil, fmt.Errorf("source %d: %w", src.ID, err)
	}

	self, err := selfLink(selfURL)
	if err != nil {
		return nil, err
	}
	if err := f.AddLink(self); err != nil {
		return nil, err
	}
	if src.FeedURL != "" {
		via, err := atom.NewLink(src.FeedURL)
		if err != nil {
			return nil, err
		}
		if err := via.SetRel(atom.RelVia); err != nil {
			return nil, err
		}
		if err := f.AddLink(via); err != nil {
			return nil, err
		}
	}
	if src.Name != "" {
		author, err := atom.NewPerson(src.Name)
		if err != nil {
			return nil, err
		}
		if err := f.AddAuthor(author); err != nil {
			return nil, err
		}
	}
	return f, nil
}
