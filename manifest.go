package eta

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Manifest describes a site: where it is served from and which components
// it defines.
type Manifest struct {
	Addr       string          `yaml:"addr"`
	Root       string          `yaml:"root"`
	Index      string          `yaml:"index"`
	Ext        string          `yaml:"ext"`
	Components []ComponentSpec `yaml:"components"`

	dir string
}

// ComponentSpec names a component and the file holding its markup,
// relative to the manifest's root.
type ComponentSpec struct {
	Tag  string `yaml:"tag"`
	Src  string `yaml:"src"`
	Pure bool   `yaml:"pure"`
}

// LoadManifest reads a YAML manifest. Relative roots are resolved against
// the manifest's folder.
func LoadManifest(path string) (*Manifest, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := ParseManifest(b)
	if err != nil {
		return nil, fmt.Errorf("eta: manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)

	return m, nil
}

// ParseManifest decodes a YAML manifest and applies defaults.
func ParseManifest(b []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, err
	}

	if m.Addr == "" {
		m.Addr = ":9091"
	}
	if m.Root == "" {
		m.Root = "."
	}
	if m.Index == "" {
		m.Index = "index.html"
	}
	if m.Ext == "" {
		m.Ext = "html"
	}
	for i, c := range m.Components {
		if c.Tag == "" {
			return nil, fmt.Errorf("component %d has no tag", i)
		}
		if c.Src == "" {
			m.Components[i].Src = c.Tag
		}
	}

	return m, nil
}

// RootDir returns the static root as a path usable from the working folder.
func (m *Manifest) RootDir() string {
	if filepath.IsAbs(m.Root) || m.dir == "" {
		return m.Root
	}
	return filepath.Join(m.dir, m.Root)
}

// Define loads every component of the manifest into rt. It stops at the
// first failure.
func (m *Manifest) Define(ctx context.Context, rt *Runtime, configs map[string]Config) error {
	loader := NewDirLoader(m.RootDir(), m.Ext)
	for _, c := range m.Components {
		cfg := configs[c.Tag]
		cfg.Pure = cfg.Pure || c.Pure
		if err := rt.Use(ctx, loader, c.Src, c.Tag, cfg); err != nil {
			return err
		}
	}

	return nil
}
