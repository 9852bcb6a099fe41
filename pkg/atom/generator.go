package atom

// Generator identifies the agent used to produce a feed.
type Generator struct {
	name    string
	uri     string
	version string
}

// NewGenerator returns a Generator with the given name.
func NewGenerator(name string) (*Generator, error) {
	g := &Generator{}
	if err := g.SetName(name); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) Name() string { return g.name }

func (g *Generator) SetName(name string) error {
	if err := requireNonEmpty("name", name); err != nil {
		return err
	}
	g.name = name
	return nil
}

func (g *Generator) HasURI() bool { return g.uri != "" }

func (g *Generator) URI() (string, error) {
	if !g.HasURI() {
		return "", notPresent("uri")
	}
	return g.uri, nil
}

func (g *Generator) SetURI(uri string) error {
	if err := requireNonEmpty("uri", uri); err != nil {
		return err
	}
	g.uri = uri
	return nil
}

func (g *Generator) HasVersion() bool { return g.version != "" }

func (g *Generator) Version() (string, error) {
	if !g.HasVersion() {
		return "", notPresent("version")
	}
	return g.version, nil
}

func (g *Generator) SetVersion(version string) error {
	if err := requireNonEmpty("version", version); err != nil {
		return err
	}
	g.version = version
	return nil
}

// Clone returns an independent copy.
func (g *Generator) Clone() *Generator {
	c := *g
	return &c
}

func (g *Generator) element() *xmlGenerator {
	return &xmlGenerator{Value: g.name, URI: g.uri, Version: g.version}
}
