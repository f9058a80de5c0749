// Package testutil provides test helper utilities for intake tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/underground-music/intake/internal/config"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// TempConfig writes cfg to intake.yaml in a fresh directory and returns the
// file path. The journal directory is redirected inside the same directory.
func TempConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	dir := t.TempDir()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Log.Dir = filepath.Join(dir, ".intake")

	path := filepath.Join(dir, config.DefaultFile)
	if err := config.WriteConfig(path, cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// IndividualAnswers is scenario A: Ana enrolls herself in individual classes.
const IndividualAnswers = `class_type: individual
main_name: Ana
for_self: true
participants:
  - age: "25"
    instruments: [piano]
    times: [morning]
    weekdays: [monday, wednesday]
`

// KidsAnswers enrolls Sofi, 6, with Marcos as guardian.
const KidsAnswers = `class_type: kids
guardian:
  name: Marcos
  child_name: Sofi
  child_age: "6"
participants:
  - instruments: [drums]
    times: [afternoon]
    weekdays: [friday]
`

// GroupAnswers enrolls Luz with Juan in her group and Eva in another one.
const GroupAnswers = `class_type: group
main_name: Luz
for_self: true
participants:
  - age: "30"
    instruments: [guitar, singing]
    times: [evening]
    weekdays: [tuesday, thursday]
  - name: Juan
    age: "28"
    same_group: true
  - name: Eva
    age: "41"
    instruments: [harmonica]
    times: [morning]
    weekdays: [friday]
`

// AnswersFiles returns the answer fixtures keyed by file name, ready for
// TempProject.
func AnswersFiles() map[string]string {
	return map[string]string{
		"individual.yaml": IndividualAnswers,
		"kids.yaml":       KidsAnswers,
		"group.yaml":      GroupAnswers,
	}
}
