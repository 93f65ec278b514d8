// Package fixtures provides shared partner feed files for tests.
// Files live in testdata next to this source file and are located through
// runtime.Caller so that tests in any package can reach them.
package fixtures

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Fixture file names.
const (
	RegionsJobSample  = "regionsjob_sample.xml"
	RegionsJobEmpty   = "regionsjob_empty.xml"
	RegionsJobPartial = "regionsjob_partial.xml"
	JobTeaserSample   = "jobteaser_sample.json"
	JobTeaserEmpty    = "jobteaser_empty.json"
	JobTeaserPartial  = "jobteaser_partial.json"
	InvalidXML        = "invalid.xml"
	InvalidJSON       = "invalid.json"
)

// Dir returns the absolute path of the testdata directory.
func Dir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// Path returns the absolute path of a fixture file.
func Path(name string) string {
	return filepath.Join(Dir(), name)
}

// CopyTo copies a fixture into dir under newName and returns the new path.
// Tests use it to exercise filename and extension based detection.
func CopyTo(t testing.TB, name, dir, newName string) string {
	t.Helper()
	data, err := os.ReadFile(Path(name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	dst := filepath.Join(dir, newName)
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		t.Fatalf("write fixture copy %s: %v", dst, err)
	}
	return dst
}

// WriteFile writes content into dir under name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", dst, err)
	}
	return dst
}
