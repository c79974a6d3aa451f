//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"sort"
	"strings"
)

// SchoolDistrict is a district instructors can be attached to.
// ID is nil for a district that has not been saved yet.
type SchoolDistrict struct {
	ID     *int
	Name   string
	Active bool
}

// ErrDistrictNameEmpty is returned when a district is saved without a name.
var ErrDistrictNameEmpty = errors.New("District name cannot be empty") //nolint:staticcheck // shown verbatim on the settings page

// ValidateDistrictName trims name and rejects it when blank.
func ValidateDistrictName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrDistrictNameEmpty
	}
	return trimmed, nil
}

// SortDistricts orders districts by name.
func SortDistricts(districts []SchoolDistrict) {
	sort.SliceStable(districts, func(i, j int) bool {
		return districts[i].Name < districts[j].Name
	})
}

// ActiveDistricts returns the active districts, preserving order.
func ActiveDistricts(districts []SchoolDistrict) []SchoolDistrict {
	out := make([]SchoolDistrict, 0, len(districts))
	for _, d := range districts {
		if d.Active {
			out = append(out, d)
		}
	}
	return out
}
