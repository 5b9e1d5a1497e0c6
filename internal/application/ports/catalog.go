package ports

import "freshroute/internal/domain/models"

// ProduceCatalogPort defines the interface for the produce reference data
type ProduceCatalogPort interface {
	// LookupDecayConstant returns the biological decay constant for a
	// produce type; apperrors.ErrUnsupportedProduce when unknown
	LookupDecayConstant(produceName string) (float64, error)

	// List returns every produce type the system supports
	List() []models.Produce
}
