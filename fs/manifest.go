// Package fs provides file-based storage for discovery manifests.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rashidq/nezamdoc"
)

// datePlaceholder in a manifest name template is replaced with the
// current date, MM.DD.YYYY.
const datePlaceholder = "{date}"

const dateLayout = "01.02.2006"

// Ensure ManifestStore implements nezamdoc.ManifestStore at compile time.
var _ nezamdoc.ManifestStore = (*ManifestStore)(nil)

// ManifestStore persists discovery manifests as dated JSON files, one
// snapshot per day per site. The JSON is indented and keeps non-ASCII
// text readable so manifests can be inspected and hand-edited.
type ManifestStore struct {
	dir  string
	name string

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewManifestStore creates a store writing to dir using the name
// template, e.g. "Nezams_IDs.{date}.json".
func NewManifestStore(dir, name string) *ManifestStore {
	return &ManifestStore{dir: dir, name: name, Now: time.Now}
}

// Path returns the manifest path for today.
func (s *ManifestStore) Path() string {
	name := strings.ReplaceAll(s.name, datePlaceholder, s.Now().Format(dateLayout))
	return filepath.Join(s.dir, name)
}

// Save writes items as today's manifest snapshot and returns its path.
// An existing snapshot for the same day is overwritten.
func (s *ManifestStore) Save(ctx context.Context, items []nezamdoc.Item) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if items == nil {
		items = []nezamdoc.Item{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", nezamdoc.Errorf(nezamdoc.EINTERNAL, "encoding manifest: %v", err)
	}

	if s.dir != "" && s.dir != "." {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", err
		}
	}

	path := s.Path()
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a manifest back from path.
func (s *ManifestStore) Load(ctx context.Context, path string) ([]nezamdoc.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nezamdoc.Errorf(nezamdoc.ENOTFOUND, "no manifest at %s", path)
		}
		return nil, err
	}

	var items []nezamdoc.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "manifest %s is not valid JSON: %v", path, err)
	}
	return items, nil
}
