package clipper

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"menuplan-admin/internal/catalog"
	"menuplan-admin/internal/llm"
)

// Clipper imports recipes from web pages into the catalog.
type Clipper struct {
	repo    *catalog.Repository
	textGen llm.TextGenerator
}

// extractedRecipe is the structure the AI returns.
type extractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(repo *catalog.Repository, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		repo:    repo,
		textGen: textGen,
	}
}

// ClipURL fetches the URL, extracts the recipe using AI, and saves it to the
// catalog. The catalog id is derived from the URL, so re-clipping the same
// page updates the existing entry.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*catalog.Recipe, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people"
}

Do not include any other text in your response.

Page Content:
%s
`, content)

	llmResponse, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted extractedRecipe
	if err := json.Unmarshal([]byte(llmResponse), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, llmResponse)
	}
	if extracted.Title == "" {
		return nil, fmt.Errorf("no recipe title found at %s", url)
	}

	rec := catalog.Recipe{
		ID:          recipeID(url),
		Title:       extracted.Title,
		Ingredients: extracted.Ingredients,
		Steps:       extracted.Steps,
		PrepTime:    extracted.PrepTime,
		Servings:    extracted.Servings,
		SourceURL:   url,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
	}

	return &rec, nil
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

// recipeID derives a stable catalog id from the source URL.
func recipeID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("clip-%x", sum[:6])
}
