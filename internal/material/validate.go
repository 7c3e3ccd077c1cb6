package material

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// ErrUnknownMaterial signals a caller bug: validation and encoding are only
// defined for the four registered material types.
var ErrUnknownMaterial = errors.New("unknown material type")

// Fields is a raw form submission for the material-specific section.
type Fields map[string]string

// ValidationError carries one message per offending field so the form can
// render inline errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validación fallida: %s", strings.Join(keys, ", "))
}

// Validate checks a raw submission against the selected variant's field
// specs. Expected failures come back as a *ValidationError; an unregistered
// material type is a caller error, not user input.
func Validate(mt model.MaterialType, raw Fields) error {
	specs, ok := variantFields[mt]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, mt)
	}

	fieldErrors := map[string]string{}
	for _, spec := range specs {
		value := strings.TrimSpace(raw[spec.Key])
		if value == "" {
			if spec.Required {
				fieldErrors[spec.Key] = "campo requerido"
			}
			continue
		}
		if spec.Numeric {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				fieldErrors[spec.Key] = "debe ser un número"
				continue
			}
			if spec.Required && parsed <= 0 {
				fieldErrors[spec.Key] = "debe ser mayor a cero"
			}
			continue
		}
		if len(spec.OneOf) > 0 && !contains(spec.OneOf, strings.ToLower(value)) {
			fieldErrors[spec.Key] = fmt.Sprintf("valor inválido, se espera: %s", strings.Join(spec.OneOf, ", "))
		}
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

// BuildDetails shapes a validated raw submission into the typed variant.
// Numeric fields were vetted by Validate; unparseable leftovers default to 0
// rather than letting NaN reach the stored row.
func BuildDetails(mt model.MaterialType, raw Fields) (model.MaterialDetails, error) {
	get := func(key string) string { return strings.TrimSpace(raw[key]) }

	switch mt {
	case model.MaterialLodos:
		return model.MaterialDetails{Lodos: &model.LodosDetails{
			ResidueName:            get(FieldResidueName),
			ManifestNumber:         get(FieldManifestNumber),
			Area:                   get(FieldArea),
			TransportServiceNumber: get(FieldTransportServiceNumber),
			WeightKg:               parseFloat(get(FieldWeightKg)),
		}}, nil
	case model.MaterialMetal:
		return model.MaterialDetails{Metal: &model.MetalDetails{
			ResidueType:  get(FieldResidueType),
			Item:         get(FieldItem),
			Quantity:     parseFloat(get(FieldQuantity)),
			Unit:         strings.ToLower(get(FieldUnit)),
			RemisionHMMX: parseOptionalFloat(get(FieldRemisionHMMX)),
			RemisionKia:  parseOptionalFloat(get(FieldRemisionKia)),
		}}, nil
	case model.MaterialOtros:
		return model.MaterialDetails{Otros: &model.OtrosDetails{
			WasteType:    get(FieldWasteType),
			Item:         get(FieldItem),
			Quantity:     parseFloat(get(FieldQuantity)),
			Unit:         strings.ToLower(get(FieldUnit)),
			RemisionHMMX: parseOptionalFloat(get(FieldRemisionHMMX)),
			RemisionKia:  parseOptionalFloat(get(FieldRemisionKia)),
		}}, nil
	case model.MaterialDestruidas:
		return model.MaterialDetails{Destruidas: &model.DestruidasDetails{
			Residues: get(FieldResidues),
			Area:     get(FieldArea),
			Weight:   parseFloat(get(FieldWeight)),
		}}, nil
	default:
		return model.MaterialDetails{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, mt)
	}
}

func parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
