package telegram

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"menuplan-admin/internal/config"
	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/masterdata"
	"menuplan-admin/internal/plan"
	"menuplan-admin/internal/requirement"
	"menuplan-admin/internal/storage"
)

// Bot answers staff queries about weekly plans via a Telegram webhook.
type Bot struct {
	api   *tgbotapi.BotAPI
	cfg   *config.Config
	plans *storage.PlanStore
	state *masterdata.State
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, plans *storage.PlanStore, state *masterdata.State) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:   bot,
		cfg:   cfg,
		plans: plans,
		state: state,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "/plan", "/woche":
		year, week := plan.CurrentWeek(time.Now())
		if len(fields) == 3 {
			if _, err := fmt.Sscanf(fields[1]+" "+fields[2], "%d %d", &year, &week); err != nil {
				b.reply(msg.Chat.ID, "Usage: /plan [year week]")
				return
			}
		}
		b.sendWeekPlan(msg.Chat.ID, year, week)
	case "/matrix":
		year, week := plan.CurrentWeek(time.Now())
		if len(fields) == 3 {
			fmt.Sscanf(fields[1]+" "+fields[2], "%d %d", &year, &week)
		}
		b.sendMatrix(msg.Chat.ID, year, week)
	default:
		b.reply(msg.Chat.ID, "Commands:\n/plan [year week] - weekly menu\n/matrix [year week] - facility requirements")
	}
}

func (b *Bot) sendWeekPlan(chatID int64, year, week int) {
	cats := b.state.Categories()
	raw, err := b.plans.Load(year, week)
	if err != nil {
		log.Printf("Error loading plan %d/W%d: %v", year, week, err)
	}
	p := plan.Normalize(raw, year, week, cats)
	b.reply(chatID, formatWeekPlan(p, cats))
}

func formatWeekPlan(p *plan.Plan, cats plan.CategorySet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Menüplan KW %d/%d*\n\n", p.Week, p.Year)
	for _, wd := range facility.Weekdays {
		day := p.Days[wd]
		fmt.Fprintf(&sb, "*%s*\n", title(wd))
		for _, c := range cats.Ordered {
			recipes := day.Meals[c.ID]
			if len(recipes) == 0 {
				continue
			}
			names := make([]string, 0, len(recipes))
			for _, r := range recipes {
				names = append(names, r.Name)
			}
			fmt.Fprintf(&sb, "  %s: %s\n", c.Name, strings.Join(names, ", "))
		}
	}
	return sb.String()
}

func (b *Bot) sendMatrix(chatID int64, year, week int) {
	cats := b.state.Categories()
	raw, err := b.plans.Load(year, week)
	if err != nil {
		log.Printf("Error loading plan %d/W%d: %v", year, week, err)
	}
	p := plan.Normalize(raw, year, week, cats)

	entries := requirement.Source(p, b.state.Facilities())
	matrix := requirement.BuildMatrix(entries, cats)
	b.reply(chatID, formatMatrix(p, matrix, cats))
}

func formatMatrix(p *plan.Plan, matrix requirement.Matrix, cats plan.CategorySet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Bedarf KW %d/%d*\n\n", p.Week, p.Year)
	for _, wd := range facility.Weekdays {
		fmt.Fprintf(&sb, "*%s*\n", title(wd))
		for _, c := range cats.Ordered {
			kuerzel := make([]string, 0)
			for _, e := range matrix[wd][c.ID] {
				kuerzel = append(kuerzel, e.Kuerzel)
			}
			if len(kuerzel) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "  %s: %s\n", c.Name, strings.Join(kuerzel, " "))
		}
	}
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
