package importer_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfeed/internal/usecase/importer"
	"jobfeed/tests/fixtures"
)

// prefixSniffer recognises content starting with prefix.
func prefixSniffer(prefix string) importer.Sniffer {
	return importer.SnifferFunc(func(content []byte) (bool, error) {
		return len(content) >= len(prefix) && string(content[:len(prefix)]) == prefix, nil
	})
}

var errSniff = errors.New("sniff failed")

type selectorFixture struct {
	reg  *importer.Registry
	xml  *namedParser
	json *namedParser
}

func newSelectorFixture(t *testing.T) selectorFixture {
	t.Helper()
	f := selectorFixture{
		reg:  importer.NewRegistry(),
		xml:  &namedParser{name: "xml"},
		json: &namedParser{name: "json"},
	}
	require.NoError(t, f.reg.RegisterPartner("regionsjob", f.xml, prefixSniffer("<")))
	require.NoError(t, f.reg.RegisterPartner("jobteaser", f.json, prefixSniffer("{")))
	require.NoError(t, f.reg.RegisterExtension("xml", f.xml))
	require.NoError(t, f.reg.RegisterExtension("json", f.json))
	return f
}

func TestSelector_ExplicitPartner(t *testing.T) {
	f := newSelectorFixture(t)
	sel := importer.NewSelector(f.reg)
	// content says JSON, the explicit partner wins
	path := fixtures.WriteFile(t, t.TempDir(), "feed.json", `{"offers":[]}`)

	p, tier, err := sel.Select(path, "RegionsJob")

	require.NoError(t, err)
	assert.Same(t, f.xml, p)
	assert.Equal(t, importer.TierPartner, tier)
}

func TestSelector_UnknownPartnerDoesNotFallBack(t *testing.T) {
	f := newSelectorFixture(t)
	sel := importer.NewSelector(f.reg)
	path := fixtures.WriteFile(t, t.TempDir(), "regionsjob.xml", `<jobs/>`)

	p, _, err := sel.Select(path, "indeed")

	assert.ErrorIs(t, err, importer.ErrUnsupportedPartner)
	assert.Contains(t, err.Error(), "indeed")
	assert.Nil(t, p)
}

func TestSelector_DetectionTiers(t *testing.T) {
	f := newSelectorFixture(t)
	sel := importer.NewSelector(f.reg)
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		want     *namedParser
		wantTier string
	}{
		{
			name:     "content wins over extension",
			path:     fixtures.WriteFile(t, dir, "export.xml", `{"offerUrlPrefix":""}`),
			want:     f.json,
			wantTier: importer.TierContent,
		},
		{
			name:     "content wins over filename",
			path:     fixtures.WriteFile(t, dir, "jobteaser.dat", `<jobs/>`),
			want:     f.xml,
			wantTier: importer.TierContent,
		},
		{
			name:     "filename substring, case-insensitive",
			path:     fixtures.WriteFile(t, dir, "Daily-JobTeaser-2024.dat", `plain text`),
			want:     f.json,
			wantTier: importer.TierFilename,
		},
		{
			name:     "filename uses registration order",
			path:     fixtures.WriteFile(t, dir, "jobteaser_regionsjob.txt", `plain text`),
			want:     f.xml,
			wantTier: importer.TierFilename,
		},
		{
			name:     "extension fallback",
			path:     fixtures.WriteFile(t, dir, "export.JSON", `plain text`),
			want:     f.json,
			wantTier: importer.TierExtension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, tier, err := sel.Select(tt.path, "")
			require.NoError(t, err)
			assert.Same(t, tt.want, p)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestSelector_ExtensionIsNotPartOfFilenameMatch(t *testing.T) {
	reg := importer.NewRegistry()
	xml := &namedParser{name: "xml"}
	require.NoError(t, reg.RegisterPartner("xml", &namedParser{name: "partner"}, nil))
	require.NoError(t, reg.RegisterExtension("xml", xml))
	path := fixtures.WriteFile(t, t.TempDir(), "export.xml", `plain text`)

	p, tier, err := importer.NewSelector(reg).Select(path, "")

	require.NoError(t, err)
	assert.Same(t, xml, p)
	assert.Equal(t, importer.TierExtension, tier)
}

func TestSelector_SnifferErrorIsNotApplicable(t *testing.T) {
	reg := importer.NewRegistry()
	xml := &namedParser{name: "xml"}
	failing := importer.SnifferFunc(func([]byte) (bool, error) { return true, errSniff })
	require.NoError(t, reg.RegisterPartner("broken", &namedParser{name: "broken"}, failing))
	require.NoError(t, reg.RegisterExtension("xml", xml))
	path := fixtures.WriteFile(t, t.TempDir(), "export.xml", `<jobs/>`)

	p, tier, err := importer.NewSelector(reg).Select(path, "")

	require.NoError(t, err)
	assert.Same(t, xml, p)
	assert.Equal(t, importer.TierExtension, tier)
}

func TestSelector_UnsupportedFormat(t *testing.T) {
	f := newSelectorFixture(t)
	sel := importer.NewSelector(f.reg)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown extension", path: fixtures.WriteFile(t, dir, "export.csv", "a,b,c")},
		{name: "no extension", path: fixtures.WriteFile(t, dir, "export", "a,b,c")},
		{name: "unreadable file", path: filepath.Join(dir, "missing.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := sel.Select(tt.path, "")
			assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
			assert.Nil(t, p)
		})
	}
}

func TestSelector_CustomDetectorChain(t *testing.T) {
	f := newSelectorFixture(t)
	sel := importer.NewSelectorWithDetectors(f.reg, importer.ExtensionDetector{Registry: f.reg})
	// content would say XML, but only the extension tier is configured
	path := fixtures.WriteFile(t, t.TempDir(), "feed.json", `<jobs/>`)

	p, tier, err := sel.Select(path, "")

	require.NoError(t, err)
	assert.Same(t, f.json, p)
	assert.Equal(t, importer.TierExtension, tier)
}
