package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeCatalog(t, `
[[asset]]
name = "default-glasses"
image = "assets/glasses.png"
kind = "glasses"

[[asset]]
name = "target-alice"
image = "assets/alice.png"
landmarks = "assets/alice.json"
gender = "female"
`)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Asset) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(cat.Asset))
	}

	a, ok := cat.ByName("target-alice")
	if !ok {
		t.Fatal("expected to find target-alice")
	}
	if a.Gender != GenderFemale {
		t.Errorf("expected gender female, got %q", a.Gender)
	}

	addons := cat.Addons()
	if len(addons) != 1 || addons[0].Kind != KindGlasses {
		t.Errorf("expected exactly one glasses addon, got %+v", addons)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/catalog.toml"); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestValidate_MissingName(t *testing.T) {
	path := writeCatalog(t, `
[[asset]]
image = "assets/x.png"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	path := writeCatalog(t, `
[[asset]]
name = "dup"
image = "a.png"

[[asset]]
name = "dup"
image = "b.png"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestValidate_UnrecognizedKind(t *testing.T) {
	path := writeCatalog(t, `
[[asset]]
name = "bad"
image = "a.png"
kind = "crown"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unrecognized kind")
	}
}

func TestByName_NotFound(t *testing.T) {
	cat := &Catalog{}
	if _, ok := cat.ByName("missing"); ok {
		t.Error("expected not found")
	}
}
