package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobfeed/internal/observability/metrics"
)

// Detection tiers, in the order the Selector applies them.
const (
	TierPartner   = "partner"
	TierContent   = "content"
	TierFilename  = "filename"
	TierExtension = "extension"
)

// Detector is one tier of parser detection. Detect returns false when the
// tier does not apply to path, letting the next tier try.
type Detector interface {
	Tier() string
	Detect(path string) (Parser, bool)
}

// Selector resolves the parser for a file.
//
// An explicit partner name is authoritative: it is looked up directly and
// never falls through to detection. Otherwise the detectors run in order and
// the first match wins.
type Selector struct {
	registry  *Registry
	detectors []Detector
}

// NewSelector creates a Selector with the default detector chain:
// content, then filename, then extension.
func NewSelector(registry *Registry) *Selector {
	return NewSelectorWithDetectors(registry,
		ContentDetector{Registry: registry},
		FilenameDetector{Registry: registry},
		ExtensionDetector{Registry: registry},
	)
}

// NewSelectorWithDetectors creates a Selector with a custom detector chain.
func NewSelectorWithDetectors(registry *Registry, detectors ...Detector) *Selector {
	return &Selector{registry: registry, detectors: detectors}
}

// Select returns the parser for path and the tier that resolved it.
// It fails with ErrUnsupportedPartner for an unknown explicit partner and
// with ErrUnsupportedFormat when no detector applies.
func (s *Selector) Select(path, partner string) (Parser, string, error) {
	if strings.TrimSpace(partner) != "" {
		p, ok := s.registry.Partner(partner)
		if !ok {
			return nil, "", fmt.Errorf("%w: %q (supported: %s)",
				ErrUnsupportedPartner, partner, strings.Join(s.registry.Partners(), ", "))
		}
		metrics.RecordParserSelection(TierPartner)
		return p, TierPartner, nil
	}

	for _, d := range s.detectors {
		if p, ok := d.Detect(path); ok {
			metrics.RecordParserSelection(d.Tier())
			return p, d.Tier(), nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// ContentDetector asks each partner's sniffer, in registration order,
// whether it recognises the file content. Read failures and sniffer errors
// make the tier inapplicable.
type ContentDetector struct {
	Registry *Registry
}

// Tier implements Detector.
func (ContentDetector) Tier() string { return TierContent }

// Detect implements Detector.
func (d ContentDetector) Detect(path string) (Parser, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	for _, p := range d.Registry.entries() {
		if p.Sniffer == nil {
			continue
		}
		if ok, err := p.Sniffer.Sniff(content); err == nil && ok {
			return p.Parser, true
		}
	}
	return nil, false
}

// FilenameDetector matches partner names as case-insensitive substrings of
// the file's base name, extension excluded.
type FilenameDetector struct {
	Registry *Registry
}

// Tier implements Detector.
func (FilenameDetector) Tier() string { return TierFilename }

// Detect implements Detector.
func (d FilenameDetector) Detect(path string) (Parser, bool) {
	base := filepath.Base(path)
	base = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if base == "" {
		return nil, false
	}
	for _, p := range d.Registry.entries() {
		if strings.Contains(base, p.Name) {
			return p.Parser, true
		}
	}
	return nil, false
}

// ExtensionDetector picks the default parser registered for the file extension.
type ExtensionDetector struct {
	Registry *Registry
}

// Tier implements Detector.
func (ExtensionDetector) Tier() string { return TierExtension }

// Detect implements Detector.
func (d ExtensionDetector) Detect(path string) (Parser, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, false
	}
	return d.Registry.Extension(ext)
}
