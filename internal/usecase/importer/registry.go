package importer

import (
	"errors"
	"fmt"
	"strings"
)

// Partner binds a partner name to the parser for its feed format.
// Sniffer is optional; aliases never carry one.
type Partner struct {
	Name    string
	Parser  Parser
	Sniffer Sniffer
}

type extension struct {
	name   string
	parser Parser
}

// Registry holds the partner and extension mappings used by the Selector.
// Registration order is significant: it is the order in which content and
// filename detection try partners.
//
// A Registry is populated at process start and read-only afterwards; it is
// not safe for concurrent registration.
type Registry struct {
	partners   []Partner
	extensions []extension
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterPartner adds a partner. Names are case-insensitive and must be unique.
func (r *Registry) RegisterPartner(name string, parser Parser, sniffer Sniffer) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("partner name is required")
	}
	if parser == nil {
		return fmt.Errorf("partner %q: parser is required", key)
	}
	if _, ok := r.partner(key); ok {
		return fmt.Errorf("partner %q already registered", key)
	}
	r.partners = append(r.partners, Partner{Name: key, Parser: parser, Sniffer: sniffer})
	return nil
}

// RegisterAlias registers alias as a new partner sharing target's parser.
// The alias takes part in explicit and filename lookups but not in content
// detection, which already covers target's format.
func (r *Registry) RegisterAlias(alias, target string) error {
	p, ok := r.partner(normalizeName(target))
	if !ok {
		return fmt.Errorf("alias %q: %w: %q", alias, ErrUnsupportedPartner, target)
	}
	return r.RegisterPartner(alias, p.Parser, nil)
}

// RegisterExtension maps a file extension (without the dot) to a fallback parser.
func (r *Registry) RegisterExtension(ext string, parser Parser) error {
	key := normalizeName(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if key == "" {
		return errors.New("extension is required")
	}
	if parser == nil {
		return fmt.Errorf("extension %q: parser is required", key)
	}
	if _, ok := r.Extension(key); ok {
		return fmt.Errorf("extension %q already registered", key)
	}
	r.extensions = append(r.extensions, extension{name: key, parser: parser})
	return nil
}

func (r *Registry) partner(key string) (Partner, bool) {
	for _, p := range r.partners {
		if p.Name == key {
			return p, true
		}
	}
	return Partner{}, false
}

// Partner returns the parser registered for name, ignoring case and
// surrounding whitespace.
func (r *Registry) Partner(name string) (Parser, bool) {
	p, ok := r.partner(normalizeName(name))
	if !ok {
		return nil, false
	}
	return p.Parser, true
}

// Extension returns the fallback parser for ext, with or without the leading dot.
func (r *Registry) Extension(ext string) (Parser, bool) {
	key := normalizeName(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for _, e := range r.extensions {
		if e.name == key {
			return e.parser, true
		}
	}
	return nil, false
}

// Partners returns the registered partner names in registration order.
func (r *Registry) Partners() []string {
	names := make([]string, 0, len(r.partners))
	for _, p := range r.partners {
		names = append(names, p.Name)
	}
	return names
}

// Extensions returns the registered extensions in registration order.
func (r *Registry) Extensions() []string {
	names := make([]string, 0, len(r.extensions))
	for _, e := range r.extensions {
		names = append(names, e.name)
	}
	return names
}

// entries returns a copy of the partner list for the detectors.
func (r *Registry) entries() []Partner {
	out := make([]Partner, len(r.partners))
	copy(out, r.partners)
	return out
}
