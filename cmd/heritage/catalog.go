package main

import (
	"fmt"
	"os"

	// Packages
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CatalogFlag selects the historical record catalog
type CatalogFlag struct {
	CatalogPath string `name:"catalog" env:"HERITAGE_CATALOG" type:"existingfile" help:"YAML catalog of historical records (defaults to the built-in catalog)"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Catalog returns the catalog from the file, or the built-in catalog
func (f CatalogFlag) Catalog() (*heritageapi.Catalog, error) {
	if f.CatalogPath == "" {
		return heritageapi.DefaultCatalog()
	}
	r, err := os.Open(f.CatalogPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	catalog, err := heritageapi.NewCatalog(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.CatalogPath, err)
	}
	return catalog, nil
}
