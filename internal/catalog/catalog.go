// Package catalog loads the asset catalog format described in spec §6:
// a set of named assets, each with an image handle, optional landmarks
// handle and gender, and for addons a placement kind.
//
// The catalog itself is a thin outer-shell concern (asset discovery is
// explicitly out of scope for the morph engine), but its format is
// fixed by the spec so that editor-produced assets stay loadable by any
// caller of pkg/morph. Example file:
//
//	[[asset]]
//	name = "default-glasses"
//	image = "assets/glasses.png"
//	kind = "glasses"
//
//	[[asset]]
//	name = "target-alice"
//	image = "assets/alice.png"
//	landmarks = "assets/alice.json"
//	gender = "female"
package catalog

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Gender is an optional classification attached to a non-addon asset.
type Gender string

// Recognized Gender values. An empty Gender means unspecified.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Kind identifies the overlay placement rule for an addon asset, per
// spec §4.8. Empty Kind means the asset is not an addon.
type Kind string

// Recognized addon Kind values.
const (
	KindGlasses   Kind = "glasses"
	KindMoustache Kind = "moustache"
	KindHat       Kind = "hat"
	KindGeneric   Kind = "generic"
)

// Asset describes one entry in the catalog.
type Asset struct {
	Name      string `toml:"name"`
	Image     string `toml:"image"`
	Landmarks string `toml:"landmarks"`
	Gender    Gender `toml:"gender"`
	Kind      Kind   `toml:"kind"`
}

// Catalog is the decoded asset catalog.
type Catalog struct {
	Asset []Asset `toml:"asset"`
}

// Load reads and parses a TOML asset catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var cat Catalog
	if _, err := toml.Decode(string(data), &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	return &cat, nil
}

// Validate checks every asset entry for required fields and
// recognized enum values.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Asset))
	for i, a := range c.Asset {
		if a.Name == "" {
			return fmt.Errorf("asset %d: name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("asset %d: duplicate name %q", i, a.Name)
		}
		seen[a.Name] = true

		if a.Image == "" {
			return fmt.Errorf("asset %q: image is required", a.Name)
		}
		switch a.Gender {
		case "", GenderMale, GenderFemale:
		default:
			return fmt.Errorf("asset %q: unrecognized gender %q", a.Name, a.Gender)
		}
		switch a.Kind {
		case "", KindGlasses, KindMoustache, KindHat, KindGeneric:
		default:
			return fmt.Errorf("asset %q: unrecognized kind %q", a.Name, a.Kind)
		}
	}
	return nil
}

// ByName returns the asset with the given name, or false if absent.
func (c *Catalog) ByName(name string) (Asset, bool) {
	for _, a := range c.Asset {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// Addons returns every asset whose Kind is set (i.e. every overlay).
func (c *Catalog) Addons() []Asset {
	var out []Asset
	for _, a := range c.Asset {
		if a.Kind != "" {
			out = append(out, a)
		}
	}
	return out
}
