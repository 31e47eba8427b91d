package hardware

import (
	_ "embed"
	"encoding/json"
	"os"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// CatalogBuckets holds candidate models keyed by performance band. Not every
// component class fills every band.
type CatalogBuckets struct {
	Low   []string `json:"low,omitempty"`
	Mid   []string `json:"mid,omitempty"`
	High  []string `json:"high,omitempty"`
	Ultra []string `json:"ultra,omitempty"`
}

// Catalog is the local component catalog setups are picked from.
type Catalog struct {
	GPUs CatalogBuckets `json:"gpus"`
	CPUs CatalogBuckets `json:"cpus"`
	RAMs CatalogBuckets `json:"rams"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() Catalog {
	var cat Catalog
	// embedded file is validated by tests, decode cannot fail at runtime
	_ = json.Unmarshal(defaultCatalogJSON, &cat)
	return cat
}

// LoadCatalog reads the catalog from path, or the embedded default when path
// is empty. An unreadable or malformed file yields an empty catalog so the
// builder falls back to its fixed models instead of failing the request.
func LoadCatalog(path string) Catalog {
	if path == "" {
		return DefaultCatalog()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return Catalog{}
	}
	return cat
}
