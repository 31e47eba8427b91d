package hardware

import (
	"math/rand"

	"github.com/rafaelduarte/gamesetup-backend/pkg/types"
)

// Component type labels in the order every built setup lists them.
const (
	ComponentGPU     = "GPU"
	ComponentCPU     = "CPU"
	ComponentRAM     = "RAM"
	ComponentStorage = "Storage"
	ComponentSO      = "SO"
)

// Picker selects an index in [0, n). Injected so tests can pin the choice.
type Picker func(n int) int

// RandomPicker is the production picker.
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// Build holds the generated component list and its price estimate.
type Build struct {
	Components     types.ComponentList
	EstimatedPrice int
}

// BuildSetup assembles a setup for the given tier and game difficulty. GPU,
// CPU and RAM come from the catalog bucket the tier calls for, with fixed
// fallback models when a bucket is empty. Storage, SO and price are constants
// per tier.
func BuildSetup(tier Tier, difficulty Difficulty, catalog Catalog, pick Picker) Build {
	if pick == nil {
		pick = RandomPicker
	}

	var gpu, cpu, ram, storage, so string
	var price int

	switch tier {
	case TierMinimum:
		gpu = pickModel(catalog.GPUs.Low, "NVIDIA GTX 1050 Ti", pick)
		cpu = pickModel(catalog.CPUs.Low, "Intel i3-10100", pick)
		ram = pickModel(catalog.RAMs.Low, "8GB DDR4", pick)
		storage = "240GB SSD"
		so = "Windows 10/11"
		price = 4500

	case TierIntermediate:
		if difficulty == DifficultyHeavy {
			gpu = pickModel(catalog.GPUs.High, "NVIDIA RTX 3070", pick)
			cpu = pickModel(catalog.CPUs.Mid, "Intel i7-11700K", pick)
			ram = pickModel(catalog.RAMs.High, "16GB DDR4", pick)
		} else {
			gpu = pickModel(catalog.GPUs.Mid, "NVIDIA RTX 3060", pick)
			cpu = pickModel(catalog.CPUs.Mid, "Intel i5-12400", pick)
			ram = pickModel(catalog.RAMs.Mid, "16GB DDR4", pick)
		}
		storage = "512GB NVMe SSD"
		so = "Windows 10/11"
		price = 8500

	default: // premium
		gpu = pickModel(catalog.GPUs.Ultra, "NVIDIA RTX 4080", pick)
		cpu = pickModel(catalog.CPUs.High, "Intel i7-13700K", pick)
		ram = pickModel(catalog.RAMs.High, "32GB DDR5", pick)
		storage = "1TB NVMe SSD"
		so = "Windows 11"
		price = 15000
	}

	return Build{
		Components: types.ComponentList{
			{Type: ComponentGPU, Model: gpu},
			{Type: ComponentCPU, Model: cpu},
			{Type: ComponentRAM, Model: ram},
			{Type: ComponentStorage, Model: storage},
			{Type: ComponentSO, Model: so},
		},
		EstimatedPrice: price,
	}
}

func pickModel(candidates []string, fallback string, pick Picker) string {
	if len(candidates) == 0 {
		return fallback
	}
	idx := pick(len(candidates))
	if idx < 0 || idx >= len(candidates) {
		idx = 0
	}
	return candidates[idx]
}
