package atom

// Person describes an author or contributor.
type Person struct {
	name  string
	uri   string
	email string
}

// NewPerson returns a Person with the given name.
func NewPerson(name string) (*Person, error) {
	p := &Person{}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the person's name.
func (p *Person) Name() string { return p.name }

// SetName replaces the name, which must not be empty.
func (p *Person) SetName(name string) error {
	if err := requireNonEmpty("name", name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *Person) HasURI() bool { return p.uri != "" }

// URI returns the IRI associated with the person.
func (p *Person) URI() (string, error) {
	if !p.HasURI() {
		return "", notPresent("uri")
	}
	return p.uri, nil
}

func (p *Person) SetURI(uri string) error {
	if err := requireNonEmpty("uri", uri); err != nil {
		return err
	}
	p.uri = uri
	return nil
}

func (p *Person) HasEmail() bool { return p.email != "" }

// Email returns the person's e-mail address.
func (p *Person) Email() (string, error) {
	if !p.HasEmail() {
		return "", notPresent("email")
	}
	return p.email, nil
}

// SetEmail stores a bare address such as "a@b.com". Display-name forms are rejected.
func (p *Person) SetEmail(email string) error {
	if !IsEmail(email) {
		return invalid("email", email, "must be a valid e-mail address")
	}
	p.email = email
	return nil
}

// Clone returns an independent copy.
func (p *Person) Clone() *Person {
	c := *p
	return &c
}

func (p *Person) element() *xmlPerson {
	return &xmlPerson{Name: p.name, URI: p.uri, Email: p.email}
}
