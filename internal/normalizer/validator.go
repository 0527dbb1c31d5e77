package normalizer

import (
	"errors"

	"jepdash/internal/dataset"
)

// Validation errors.
var (
	ErrNilDataset      = errors.New("dataset is nil")
	ErrAlreadyEnriched = errors.New("dataset is already enriched")
)

// Validator checks that a dataset can be enriched.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate rejects a nil dataset and one that was already enriched. An
// empty dataset or one with missing columns is valid.
func (v *Validator) Validate(ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}

	if ds.Enriched() {
		return ErrAlreadyEnriched
	}

	return nil
}
