// Package suggest proposes catalog recipes for the empty slots of a weekly
// plan. It only ever reads the plan; applying a suggestion goes through the
// plan store like any other edit.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"menuplan-admin/internal/catalog"
	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/llm"
	"menuplan-admin/internal/plan"
)

// Suggestion is one proposed fill for an empty slot.
type Suggestion struct {
	Day         string `json:"day"`
	Category    string `json:"category"`
	RecipeID    string `json:"recipe_id"`
	RecipeTitle string `json:"recipe_title"`
	Note        string `json:"note"`
}

// Suggester generates slot suggestions from the catalog.
type Suggester struct {
	repo    *catalog.Repository
	textGen llm.TextGenerator
}

// NewSuggester creates a new Suggester instance.
func NewSuggester(repo *catalog.Repository, textGen llm.TextGenerator) *Suggester {
	return &Suggester{
		repo:    repo,
		textGen: textGen,
	}
}

// SuggestEmptySlots proposes one recipe per empty slot of p. A fully filled
// plan yields no suggestions and no LLM call.
func (s *Suggester) SuggestEmptySlots(ctx context.Context, p *plan.Plan, cats plan.CategorySet) ([]Suggestion, error) {
	empty := emptySlots(p, cats)
	if len(empty) == 0 {
		return nil, nil
	}

	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("no recipes in the catalog to suggest from")
	}

	var contextBuilder strings.Builder
	for _, r := range recipes {
		fmt.Fprintf(&contextBuilder, "ID: %s\nTitle: %s\nTags: %v\nPrep Time: %s\n\n",
			r.ID, r.Title, r.Tags, r.PrepTime)
	}

	var slotBuilder strings.Builder
	for _, slot := range empty {
		fmt.Fprintf(&slotBuilder, "- day %q, category %q\n", slot.Day, slot.Category)
	}

	prompt := fmt.Sprintf(`
You are a canteen menu planner. The weekly plan below has empty slots.
Pick one fitting recipe from the available recipes for each empty slot.
Soup slots get soups, dessert slots get desserts, main slots get main dishes.
Only use recipes from the list and copy their id and title exactly.

Empty slots:
%s
Available Recipes:
%s
Return the result strictly as a JSON array with this structure:
[
  {"day": "montag", "category": "menu1", "recipe_id": "id", "recipe_title": "Title", "note": "why this fits"},
  ...
]

Do not include any other text in your response.
`, slotBuilder.String(), contextBuilder.String())

	llmResponse, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(llmResponse), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions JSON: %w. Response: %s", err, llmResponse)
	}

	// The model occasionally invents slots; keep only the ones we asked for.
	asked := make(map[plan.SlotRef]bool, len(empty))
	for _, slot := range empty {
		asked[slot] = true
	}
	kept := suggestions[:0]
	for _, sg := range suggestions {
		if asked[plan.SlotRef{Day: sg.Day, Category: sg.Category}] && sg.RecipeID != "" {
			kept = append(kept, sg)
		}
	}
	return kept, nil
}

func emptySlots(p *plan.Plan, cats plan.CategorySet) []plan.SlotRef {
	var slots []plan.SlotRef
	for _, wd := range facility.Weekdays {
		day, ok := p.Days[wd]
		if !ok {
			continue
		}
		for _, c := range cats.Ordered {
			if len(day.Meals[c.ID]) == 0 {
				slots = append(slots, plan.SlotRef{Day: wd, Category: c.ID})
			}
		}
	}
	return slots
}
