package query

import (
	"strings"
	"time"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// MaterialAll is the sentinel that disables material filtering.
const MaterialAll = "all"

// FilterByDateRange keeps logs whose date falls within [from, to], both
// bounds inclusive at day granularity. A nil bound leaves that side open.
func FilterByDateRange(logs []model.DisposalLog, from, to *time.Time) []model.DisposalLog {
	if from == nil && to == nil {
		return logs
	}

	result := make([]model.DisposalLog, 0, len(logs))
	for _, log := range logs {
		day := dateOnly(log.Date)
		if from != nil && day.Before(dateOnly(*from)) {
			continue
		}
		if to != nil && day.After(dateOnly(*to)) {
			continue
		}
		result = append(result, log)
	}
	return result
}

// FilterByMaterial keeps logs of the given material type; an empty string or
// the "all" sentinel matches everything.
func FilterByMaterial(logs []model.DisposalLog, materialType string) []model.DisposalLog {
	materialType = strings.ToLower(strings.TrimSpace(materialType))
	if materialType == "" || materialType == MaterialAll {
		return logs
	}

	result := make([]model.DisposalLog, 0, len(logs))
	for _, log := range logs {
		if string(log.MaterialType) == materialType {
			result = append(result, log)
		}
	}
	return result
}

// Search keeps logs matching the term as a case-insensitive substring of any
// scalar display field, falling back to the active variant's text fields.
func Search(logs []model.DisposalLog, term string) []model.DisposalLog {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return logs
	}

	result := make([]model.DisposalLog, 0, len(logs))
	for _, log := range logs {
		if matchesTerm(log, term) {
			result = append(result, log)
		}
	}
	return result
}

func matchesTerm(log model.DisposalLog, term string) bool {
	scalars := []string{
		log.Folio,
		string(log.MaterialType),
		log.AuthorizingPerson,
		log.Department,
		log.Driver.Company,
		log.Driver.Destination,
		log.Driver.Origin,
		log.Driver.Name,
		log.Reason,
		material.FormatQuantity(log.TotalWeight),
	}
	for _, value := range scalars {
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	for _, value := range material.VariantText(log) {
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
