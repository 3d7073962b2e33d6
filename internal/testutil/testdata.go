package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// LoadText returns a trimmed fixture from testdata relative path.
func LoadText(t *testing.T, rel string) string {
	t.Helper()
	data := readTestdata(t, rel)
	return strings.TrimSpace(string(data))
}

// Path resolves a testdata file relative to the repo root.
func Path(t *testing.T, rel string) string {
	t.Helper()
	for _, path := range candidates(rel) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return ""
}

// FrameFixtures lists the golden frame names under testdata/frames, i.e.
// every <name>.hex that has a matching <name>.json.
func FrameFixtures(t *testing.T) []string {
	t.Helper()
	var names []string
	for _, dir := range candidates("frames") {
		matches, err := filepath.Glob(filepath.Join(dir, "*.hex"))
		if err != nil || len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			name := strings.TrimSuffix(filepath.Base(m), ".hex")
			if _, err := os.Stat(filepath.Join(dir, name+".json")); err == nil {
				names = append(names, name)
			}
		}
		break
	}
	if len(names) == 0 {
		t.Fatalf("no frame fixtures found")
	}
	sort.Strings(names)
	return names
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	for _, path := range candidates(rel) {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}

func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}
