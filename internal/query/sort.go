package query

import (
	"sort"
	"strings"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// Sort fields accepted by SortBy.
const (
	SortByFolio    = "folio"
	SortByDate     = "date"
	SortByWeight   = "weight"
	SortByMaterial = "material"
	SortByCompany  = "company"
	SortByDriver   = "driver"
)

// SortState tracks the active sort column and direction the way the history
// table does: selecting a new field resets to ascending, selecting the same
// field again toggles the direction.
type SortState struct {
	Field string
	Asc   bool
}

func (s *SortState) Select(field string) {
	if s.Field == field {
		s.Asc = !s.Asc
		return
	}
	s.Field = field
	s.Asc = true
}

// SortBy orders a copy of the collection by the given field. Dates compare
// as timestamps, weights as numbers, everything else as case-folded strings.
// Unknown fields leave the input order untouched.
func SortBy(logs []model.DisposalLog, field string, asc bool) []model.DisposalLog {
	sorted := make([]model.DisposalLog, len(logs))
	copy(sorted, logs)

	less := lessFunc(field)
	if less == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

func lessFunc(field string) func(a, b model.DisposalLog) bool {
	switch field {
	case SortByDate:
		return func(a, b model.DisposalLog) bool { return a.Date.Before(b.Date) }
	case SortByWeight:
		return func(a, b model.DisposalLog) bool { return a.TotalWeight < b.TotalWeight }
	case SortByFolio:
		return stringLess(func(l model.DisposalLog) string { return l.Folio })
	case SortByMaterial:
		return stringLess(func(l model.DisposalLog) string { return string(l.MaterialType) })
	case SortByCompany:
		return stringLess(func(l model.DisposalLog) string { return l.Driver.Company })
	case SortByDriver:
		return stringLess(func(l model.DisposalLog) string { return l.Driver.Name })
	default:
		return nil
	}
}

func stringLess(key func(model.DisposalLog) string) func(a, b model.DisposalLog) bool {
	return func(a, b model.DisposalLog) bool {
		return strings.ToLower(key(a)) < strings.ToLower(key(b))
	}
}
