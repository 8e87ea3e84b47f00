package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mini-storefront/internal/catalog"
	"mini-storefront/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Writes sample catalogue files for the file and s3 catalogue sources:
//
//	data/catalog.json      the built-in six products
//	data/catalog.yaml.gz   the same products plus a few extras, gzipped
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := catalog.DefaultProducts()

	extended := append(catalog.DefaultProducts(),
		model.Product{ID: "p7", Name: "Mango", Price: decimal.RequireFromString("2.75"), Category: "fruits", ImageRef: "mango.jpg"},
		model.Product{ID: "p8", Name: "Tablet", Price: decimal.RequireFromString("650.00"), Category: "electronics", ImageRef: "tablet.jpg"},
		model.Product{ID: "p9", Name: "Coffee Beans", Price: decimal.RequireFromString("12.40"), Category: "pantry", ImageRef: "coffee.jpg"},
	)

	jsonPath := filepath.Join(dataDir, "catalog.json")
	if err := writeJSON(jsonPath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", jsonPath, err)
	}
	fmt.Printf("Created %s with %d products\n", jsonPath, len(products))

	yamlPath := filepath.Join(dataDir, "catalog.yaml.gz")
	if err := writeGzipYAML(yamlPath, extended); err != nil {
		log.Fatalf("Failed to create %s: %v", yamlPath, err)
	}
	fmt.Printf("Created %s with %d products\n", yamlPath, len(extended))

	fmt.Println("\nUse them with:")
	fmt.Println("  CATALOG_SOURCE=file CATALOG_FILE=data/catalog.json storefront serve")
	fmt.Println("  CATALOG_SOURCE=file CATALOG_FILE=data/catalog.yaml.gz storefront tui")
}

func writeJSON(filePath string, products []model.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}
	return os.WriteFile(filePath, append(data, '\n'), 0644)
}

func writeGzipYAML(filePath string, products []model.Product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := yaml.NewEncoder(gzipWriter)
	defer enc.Close()

	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to write catalogue: %w", err)
	}

	return nil
}
