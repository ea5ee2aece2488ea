package catalog

import (
	_ "embed"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-deadlines/internal/config"
)

//go:embed data/conferences.yaml
var embeddedCatalog []byte

// Load decodes and validates a catalog document from the given reader.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogDecode, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	slog.Debug(config.MsgCatalogLoaded,
		config.LogKeyComponent, config.CompCatalog,
		config.LogKeyTotal, len(c.Entries),
	)
	return &c, nil
}

// LoadEmbedded returns the catalog shipped inside the binary.
// The embedded data is vetted at build time; an error here means the
// binary itself is broken.
func LoadEmbedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a catalog from a local YAML file.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf(config.ErrLocalPathEmpty)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}
