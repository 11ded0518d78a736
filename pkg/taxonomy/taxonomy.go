// Package taxonomy holds the fixed catalog of categories, subcategories and
// sentiment values used to classify customer reviews. The registry is built
// once at startup and is read-only afterwards, so it can be shared by any
// number of concurrent extractions without locking.
package taxonomy

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Sentiment values recognized by the registry.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Sentiments lists the permitted sentiment values in canonical order.
var Sentiments = []string{SentimentPositive, SentimentNegative, SentimentNeutral}

// ErrUnknownCategory is returned when a category lookup misses.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one top-level classification entry. Subcategory lists are kept
// per sentiment because not every subcategory makes sense under every
// sentiment; membership checks use the union across sentiments.
type Category struct {
	Name          string              `yaml:"name"`
	Subcategories map[string][]string `yaml:"subcategories"`
}

// Registry answers membership queries against the taxonomy. All lookups are
// case-sensitive and exact; normalization belongs to the validation layer.
type Registry struct {
	categories []Category
	byName     map[string]int
	union      map[string]map[string]struct{}
	sentiments map[string]struct{}
}

// New builds a registry from category definitions. Category and subcategory
// order is preserved as given.
func New(categories []Category) *Registry {
	r := &Registry{
		categories: categories,
		byName:     make(map[string]int, len(categories)),
		union:      make(map[string]map[string]struct{}, len(categories)),
		sentiments: make(map[string]struct{}, len(Sentiments)),
	}

	for _, s := range Sentiments {
		r.sentiments[s] = struct{}{}
	}

	for i, cat := range categories {
		r.byName[cat.Name] = i

		set := make(map[string]struct{})
		for _, subs := range cat.Subcategories {
			for _, sub := range subs {
				set[sub] = struct{}{}
			}
		}
		r.union[cat.Name] = set
	}

	return r
}

// Categories returns the category names in definition order.
func (r *Registry) Categories() []string {
	names := make([]string, len(r.categories))
	for i, cat := range r.categories {
		names[i] = cat.Name
	}
	return names
}

// Subcategories returns every subcategory permitted under the category,
// in definition order with duplicates across sentiments removed.
func (r *Registry) Subcategories(category string) ([]string, error) {
	i, ok := r.byName[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, sentiment := range Sentiments {
		for _, sub := range r.categories[i].Subcategories[sentiment] {
			if _, dup := seen[sub]; dup {
				continue
			}
			seen[sub] = struct{}{}
			out = append(out, sub)
		}
	}
	return out, nil
}

// SubcategoriesFor returns the subcategories permitted under the category
// for one specific sentiment. Used by prompt rendering.
func (r *Registry) SubcategoriesFor(category, sentiment string) []string {
	i, ok := r.byName[category]
	if !ok {
		return nil
	}
	return r.categories[i].Subcategories[sentiment]
}

// Contains reports whether the subcategory is permitted under the category.
// Absent category or subcategory yields false, never an error.
func (r *Registry) Contains(category, subcategory string) bool {
	set, ok := r.union[category]
	if !ok {
		return false
	}
	_, ok = set[subcategory]
	return ok
}

// IsValidSentiment reports whether the value is a permitted sentiment.
func (r *Registry) IsValidSentiment(value string) bool {
	_, ok := r.sentiments[value]
	return ok
}

type fileDefinition struct {
	Categories []Category `yaml:"categories"`
}

// Load reads a taxonomy definition from YAML. The document lists categories
// in order, each with sentiment-keyed subcategory lists, matching the shape
// of the built-in definition.
func Load(r io.Reader) (*Registry, error) {
	var def fileDefinition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("decoding taxonomy definition: %w", err)
	}

	if len(def.Categories) == 0 {
		return nil, errors.New("taxonomy definition has no categories")
	}

	for _, cat := range def.Categories {
		if cat.Name == "" {
			return nil, errors.New("taxonomy definition has a category without a name")
		}
		for sentiment := range cat.Subcategories {
			if !isKnownSentiment(sentiment) {
				return nil, fmt.Errorf("taxonomy category %q uses unknown sentiment %q", cat.Name, sentiment)
			}
		}
	}

	return New(def.Categories), nil
}

func isKnownSentiment(value string) bool {
	for _, s := range Sentiments {
		if s == value {
			return true
		}
	}
	return false
}
