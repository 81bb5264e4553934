// Package catalog is the recipe catalog of the admin suite. The plan editor
// only ever references recipes by {id, name}; the full recipe data lives
// here.
package catalog

import (
	"menuplan-admin/internal/plan"
)

// Recipe is one catalog entry.
type Recipe struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tags        []string `json:"tags"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
	SourceURL   string   `json:"source_url,omitempty"`
	UpdatedAt   string   `json:"updated_at"`
}

// Ref returns the lightweight reference the plan editor works with.
func (r Recipe) Ref() plan.RecipeRef {
	return plan.RecipeRef{ID: r.ID, Name: r.Title}
}
