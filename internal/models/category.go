package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category groups habits for filtering.
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryProductivity Category = "Productivity"
	CategoryMindfulness  Category = "Mindfulness"
	CategorySocial       Category = "Social"
	CategoryLearning     Category = "Learning"
	CategoryOther        Category = "Other"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryProductivity,
		CategoryMindfulness,
		CategorySocial,
		CategoryLearning,
		CategoryOther,
	}
}

// ParseCategory matches s case-insensitively. An empty string is CategoryOther.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	if c == "" {
		return string(CategoryOther)
	}
	return string(c)
}

func (c Category) MarshalText() ([]byte, error) {
	if c == "" {
		return []byte(CategoryOther), nil
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
