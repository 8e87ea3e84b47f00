package catalog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"mini-storefront/internal/model"

	"gopkg.in/yaml.v3"
)

// Format identifies a catalogue encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// formatFor derives the encoding of a catalogue from its file name or object key.
// A trailing .gz marks gzip compression.
func formatFor(name string) (Format, bool, error) {
	name = strings.ToLower(name)
	compressed := false
	if strings.HasSuffix(name, ".gz") {
		compressed = true
		name = strings.TrimSuffix(name, ".gz")
	}

	switch path.Ext(name) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	default:
		return "", false, fmt.Errorf("unsupported catalogue format: %s", name)
	}
}

// decode reads a catalogue document from r. The document is a list of products.
func decode(r io.Reader, name string) ([]model.Product, error) {
	format, compressed, err := formatFor(name)
	if err != nil {
		return nil, err
	}

	if compressed {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var products []model.Product
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&products)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&products)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode catalogue %s: %w", name, err)
	}

	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
