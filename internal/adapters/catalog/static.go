package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"freshroute/internal/application/ports"
	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

// Adapter implements the ProduceCatalogPort interface from a static
// produce list. The list ships built in and can be overridden with a
// JSON file.
type Adapter struct {
	byName  map[string]models.Produce
	ordered []models.Produce
}

// New creates a catalog adapter with the built-in produce list
func New() ports.ProduceCatalogPort {
	return fromList(defaultProduce())
}

// NewFromFile creates a catalog adapter from a JSON file containing an
// array of produce entries
func NewFromFile(path string) (ports.ProduceCatalogPort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read produce catalog: %w", err)
	}

	var produce []models.Produce
	if err := json.Unmarshal(data, &produce); err != nil {
		return nil, fmt.Errorf("failed to decode produce catalog: %w", err)
	}
	if len(produce) == 0 {
		return nil, fmt.Errorf("produce catalog %s is empty", path)
	}

	return fromList(produce), nil
}

func fromList(produce []models.Produce) *Adapter {
	byName := make(map[string]models.Produce, len(produce))
	for _, p := range produce {
		byName[p.Name] = p
	}
	return &Adapter{byName: byName, ordered: produce}
}

// LookupDecayConstant returns the biological decay constant for a produce type
func (a *Adapter) LookupDecayConstant(produceName string) (float64, error) {
	produce, ok := a.byName[produceName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedProduce, produceName)
	}
	return produce.DecayConstant, nil
}

// List returns every produce type the system supports
func (a *Adapter) List() []models.Produce {
	out := make([]models.Produce, len(a.ordered))
	copy(out, a.ordered)
	return out
}

func defaultProduce() []models.Produce {
	return []models.Produce{
		{Name: "Apple", Category: "fruits", DecayConstant: 0.2},
		{Name: "Banana", Category: "fruits", DecayConstant: 0.8},
		{Name: "Mango", Category: "fruits", DecayConstant: 0.6},
		{Name: "Grapes", Category: "fruits", DecayConstant: 0.7},
		{Name: "Strawberry", Category: "fruits", DecayConstant: 2.0},
		{Name: "Tomato", Category: "vegetables", DecayConstant: 0.5},
		{Name: "Spinach", Category: "vegetables", DecayConstant: 1.5},
		{Name: "Broccoli", Category: "vegetables", DecayConstant: 1.0},
		{Name: "Carrot", Category: "vegetables", DecayConstant: 0.3},
		{Name: "Potato", Category: "vegetables", DecayConstant: 0.1},
	}
}
