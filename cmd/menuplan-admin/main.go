package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"menuplan-admin/internal/audit"
	"menuplan-admin/internal/catalog"
	"menuplan-admin/internal/clipper"
	"menuplan-admin/internal/config"
	"menuplan-admin/internal/database"
	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/llm"
	"menuplan-admin/internal/plan"
	"menuplan-admin/internal/requirement"
	"menuplan-admin/internal/storage"
	"menuplan-admin/internal/suggest"
)

func main() {
	godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "show":
		year, week := weekFlags("show")
		runShow(cfg, year, week)
	case "matrix":
		year, week := weekFlags("matrix")
		runMatrix(cfg, year, week)
	case "clear":
		year, week := weekFlags("clear")
		runClear(ctx, cfg, year, week)
	case "clip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: menuplan-admin clip <url>")
		}
		runClip(ctx, cfg, os.Args[2])
	case "suggest":
		year, week := weekFlags("suggest")
		runSuggest(ctx, cfg, year, week)
	case "audit-cleanup":
		cleanupCmd := flag.NewFlagSet("audit-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 90, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])
		runAuditCleanup(ctx, cfg, *days)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// weekFlags parses the shared -year/-week flags, defaulting to the current
// ISO week.
func weekFlags(name string) (int, int) {
	curYear, curWeek := plan.CurrentWeek(time.Now())
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	year := fs.Int("year", curYear, "plan year")
	week := fs.Int("week", curWeek, "ISO calendar week")
	fs.Parse(os.Args[2:])
	return *year, *week
}

// loadCategorySet builds the category configuration from the master file,
// falling back to the default four-slot set.
func loadCategorySet(cfg *config.Config) plan.CategorySet {
	def := plan.DefaultCategorySet()
	ordered, err := storage.LoadCategories(cfg.CategoriesPath)
	if err != nil {
		log.Printf("Warning: failed to load categories: %v", err)
	}
	if ordered == nil {
		return def
	}
	return plan.NewCategorySet(ordered, def.Soup, def.Dessert, def.Mains)
}

func loadWeek(cfg *config.Config, year, week int, cats plan.CategorySet) (*storage.PlanStore, *plan.Plan) {
	plans, err := storage.NewPlanStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open plan storage: %v", err)
	}
	raw, err := plans.Load(year, week)
	if err != nil {
		log.Printf("Warning: plan %d/W%02d unreadable, starting empty: %v", year, week, err)
	}
	return plans, plan.Normalize(raw, year, week, cats)
}

func runShow(cfg *config.Config, year, week int) {
	cats := loadCategorySet(cfg)
	_, p := loadWeek(cfg, year, week, cats)

	fmt.Printf("=== Menüplan %d / KW %02d ===\n", year, week)
	for _, wd := range facility.Weekdays {
		day := p.Days[wd]
		fmt.Printf("\n%s\n", wd)
		for _, c := range cats.Ordered {
			names := make([]string, 0)
			for _, r := range day.Meals[c.ID] {
				names = append(names, r.Name)
			}
			fmt.Printf("  %-10s %s\n", c.Name+":", strings.Join(names, ", "))
			if cats.IsMain(c.ID) && len(day.Assignments[c.ID]) > 0 {
				fmt.Printf("  %-10s %s\n", "", "-> "+strings.Join(day.Assignments[c.ID], " "))
			}
		}
	}
	if p.Snapshot != nil {
		fmt.Printf("\nFacility snapshot from %s (%d facilities)\n", p.Snapshot.GeneratedAt, len(p.Snapshot.Facilities))
	}
}

func runMatrix(cfg *config.Config, year, week int) {
	cats := loadCategorySet(cfg)
	_, p := loadWeek(cfg, year, week, cats)

	facilities, err := storage.LoadFacilities(cfg.FacilitiesPath)
	if err != nil {
		log.Printf("Warning: failed to load facilities: %v", err)
	}

	entries := requirement.Source(p, facilities)
	matrix := requirement.BuildMatrix(entries, cats)

	source := "live master data"
	if p.Snapshot != nil {
		source = "plan snapshot from " + p.Snapshot.GeneratedAt
	}
	fmt.Printf("=== Bedarf %d / KW %02d (%s) ===\n", year, week, source)
	for _, wd := range facility.Weekdays {
		fmt.Printf("\n%s\n", wd)
		for _, c := range cats.Ordered {
			kuerzel := make([]string, 0)
			for _, e := range matrix[wd][c.ID] {
				kuerzel = append(kuerzel, e.Kuerzel)
			}
			fmt.Printf("  %-10s %s\n", c.Name+":", strings.Join(kuerzel, " "))
		}
	}
}

func runClear(ctx context.Context, cfg *config.Config, year, week int) {
	cats := loadCategorySet(cfg)
	plans, p := loadWeek(cfg, year, week, cats)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := plan.NewStore(cats, year, week)
	store.Replace(p, year, week)
	store.Clear()

	cleared := store.Plan()
	cleared.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	cleared.UpdatedBy = cfg.UpdatedBy

	saver := &audit.RecordingSaver{Inner: plans, Log: audit.NewStore(db.SQL)}
	if err := saver.SavePlan(ctx, cleared); err != nil {
		log.Fatalf("Failed to save cleared plan: %v", err)
	}
	fmt.Printf("Cleared plan %d/W%02d.\n", year, week)
}

func runClip(ctx context.Context, cfg *config.Config, url string) {
	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("Clipping needs AI extraction: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeClipper := clipper.NewClipper(catalog.NewRepository(db.SQL), geminiClient)

	fmt.Printf("Clipping recipe from %s ...\n", url)
	rec, err := recipeClipper.ClipURL(ctx, url)
	if err != nil {
		log.Fatalf("Clipping failed: %v", err)
	}
	fmt.Printf("Saved \"%s\" to the catalog (id %s).\n", rec.Title, rec.ID)
}

func runSuggest(ctx context.Context, cfg *config.Config, year, week int) {
	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("Suggestions need AI: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cats := loadCategorySet(cfg)
	_, p := loadWeek(cfg, year, week, cats)

	suggester := suggest.NewSuggester(catalog.NewRepository(db.SQL), geminiClient)
	suggestions, err := suggester.SuggestEmptySlots(ctx, p, cats)
	if err != nil {
		log.Fatalf("Failed to generate suggestions: %v", err)
	}
	if len(suggestions) == 0 {
		fmt.Println("No empty slots, nothing to suggest.")
		return
	}

	fmt.Printf("=== Suggestions for %d / KW %02d ===\n", year, week)
	for _, s := range suggestions {
		fmt.Printf("%-10s %-8s %s", s.Day, s.Category, s.RecipeTitle)
		if s.Note != "" {
			fmt.Printf("  (%s)", s.Note)
		}
		fmt.Println()
	}
}

func runAuditCleanup(ctx context.Context, cfg *config.Config, days int) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	affected, err := audit.NewStore(db.SQL).Cleanup(ctx, days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Successfully removed %d old save log records.\n", affected)
}

func printUsage() {
	fmt.Println("Usage: menuplan-admin <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  show           Print the weekly menu plan")
	fmt.Println("  matrix         Print the facility requirement matrix")
	fmt.Println("  clear          Empty all slots and assignments of a week")
	fmt.Println("  clip <url>     Import a recipe from a web page into the catalog")
	fmt.Println("  suggest        Propose recipes for empty slots")
	fmt.Println("  audit-cleanup  Remove old save log records")
}
