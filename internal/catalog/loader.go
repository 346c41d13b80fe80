package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
// Prices may be written as numbers or quoted strings.
func Parse(data []byte) (*model.Catalog, error) {
	var spec model.CatalogSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, &model.InvalidCatalogError{Field: "catalog", Reason: "empty document"}
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return model.NewCatalog(spec)
}

// Resolve returns the catalog in path, or the built-in catalog when path is empty.
func Resolve(path string) (*model.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Encode writes the catalog as YAML.
func Encode(w io.Writer, cat *model.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cat.Spec()); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
