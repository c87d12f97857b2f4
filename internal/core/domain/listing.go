package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortDeathAsc  SortKey = "death-asc"
	SortDeathDesc SortKey = "death-desc"
)

func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", string(SortNameAsc):
		return SortNameAsc, nil
	case string(SortNameDesc):
		return SortNameDesc, nil
	case string(SortDeathAsc):
		return SortDeathAsc, nil
	case string(SortDeathDesc):
		return SortDeathDesc, nil
	default:
		return "", fmt.Errorf("invalid sort key: %s", s)
	}
}

// ApplyView filters profiles by a case-insensitive substring match on the name
// and orders the result by the given key. The input slice is not modified.
// Equal keys keep their input order.
func ApplyView(profiles []Profile, searchTerm string, key SortKey) []Profile {
	term := strings.ToLower(searchTerm)

	view := make([]Profile, 0, len(profiles))

	for _, p := range profiles {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			view = append(view, p)
		}
	}

	c := collate.New(language.English)

	switch key {
	case SortNameAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return c.CompareString(view[i].Name, view[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return c.CompareString(view[j].Name, view[i].Name) < 0
		})
	case SortDeathAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].DeathDate.Before(view[j].DeathDate)
		})
	case SortDeathDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[j].DeathDate.Before(view[i].DeathDate)
		})
	}

	return view
}
