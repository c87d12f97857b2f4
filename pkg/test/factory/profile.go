package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"

	"mygene/internal/core/util"
)

// NewProfile builds a memorial profile with coherent defaults: a fresh code
// and a birth date before the death date, both in the past.
func NewProfile[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"Code":          util.GenerateProfileCode(),
		"BirthDate":     time.Date(1920, time.March, 14, 0, 0, 0, 0, time.UTC),
		"DeathDate":     time.Date(1995, time.August, 2, 0, 0, 0, 0, time.UTC),
		"FamilyDetails": "Survived by three children and seven grandchildren.",
		"BurialInfo":    "Buried at Greenwood Cemetery, plot 42.",
		"CreatedAt":     time.Now(),
		"UpdatedAt":     time.Now(),
	}

	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return instance.Build(defaults)
}
