// Package atom builds RFC 4287 Atom syndication documents.
//
// Values are assembled bottom-up and validated as they are set:
//
//	title := atom.NewText("Example Feed")
//	feed, err := atom.NewFeed("urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6", title, time.Now())
//	if err != nil {
//	    return err
//	}
//	author, _ := atom.NewPerson("John Doe")
//	_ = feed.AddAuthor(author)
//
//	entry, _ := atom.NewEntry("urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a",
//	    atom.NewText("Atom-Powered Robots Run Amok"), time.Now())
//	link, _ := atom.NewAlternateLink("http://example.org/2003/12/13/atom03")
//	_ = entry.AddLink(link)
//	_ = feed.AddEntry(entry)
//
//	doc, err := feed.Render()
//
// Constructors take the required fields only. Optional fields are set with
// SetX, tested with HasX and read with X, which fails with ErrNotPresent when
// the field is unset. Rejected values fail with ErrInvalidInput and leave the
// previous value in place.
//
// Authors, links, categories, contributors and entries keep insertion order
// and are deduplicated by identity: adding the same *Person twice renders it
// once, while two distinct persons with equal fields render twice. Attached
// values are shared, not copied; use Clone for an independent copy.
//
// Values are not safe for concurrent mutation.
package atom
