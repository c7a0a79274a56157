package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot-engine/internal/config"
	"clubbot-engine/internal/domain"
	"clubbot-engine/internal/events"
	"clubbot-engine/internal/query"
)

// Snapshotter is the read side of the record store.
type Snapshotter interface {
	Snapshot() ([]domain.Record, error)
}

// Bot answers member commands from the record store and announces
// harvest results into the configured chat.
type Bot struct {
	api         *tgbotapi.BotAPI
	chatID      int64
	store       Snapshotter
	extractor   query.ParamExtractor
	resources   []config.Link
	resumeLinks []config.Link
}

func New(token string, chatID int64, store Snapshotter, extractor query.ParamExtractor, resources, resumeLinks []config.Link) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		chatID:      chatID,
		store:       store,
		extractor:   extractor,
		resources:   resources,
		resumeLinks: resumeLinks,
	}, nil
}

// Run consumes updates until the context is cancelled. When a hub is
// given, harvest notices are announced into the configured chat.
func (b *Bot) Run(ctx context.Context, hub *events.Hub) {
	log.Printf("[bot] authorized as @%s", b.api.Self.UserName)

	if hub != nil {
		go b.announceLoop(ctx, hub)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// handleMessage routes "!command args" and "/command args" lines.
// Everything else in the chat is ignored.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if len(text) < 2 || (text[0] != '!' && text[0] != '/') {
		return
	}

	name, args := splitCommand(text[1:])
	// Telegram appends "@botname" to commands in groups.
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	switch strings.ToLower(name) {
	case "jobs":
		b.handleRecords(msg.Chat.ID, args, domain.TypeJob, domain.TypeInternship)
	case "internships":
		b.handleRecords(msg.Chat.ID, args, domain.TypeInternship)
	case "events":
		b.handleRecords(msg.Chat.ID, args, domain.TypeEvent)
	case "resources":
		b.send(msg.Chat.ID, linkList("Resources", b.resources))
	case "resume":
		b.send(msg.Chat.ID, linkList("Resume help", b.resumeLinks))
	case "help":
		b.send(msg.Chat.ID, helpText)
	}
}

func (b *Bot) announceLoop(ctx context.Context, hub *events.Hub) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-ch:
			if n.Err == "" && n.Added == 0 {
				continue
			}
			b.send(b.chatID, n.Summary())
		}
	}
}

func (b *Bot) sendCard(chatID int64, card query.Card) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(card.Title))
	for _, f := range card.Fields {
		fmt.Fprintf(&sb, "%s: %s\n", f.Name, html.EscapeString(f.Value))
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimRight(sb.String(), "\n"))
	msg.ParseMode = tgbotapi.ModeHTML
	if card.Link != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Apply / Details", card.Link),
			),
		)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[bot] card send to %d failed: %v", chatID, err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[bot] send to %d failed: %v", chatID, err)
	}
}

func splitCommand(s string) (name, args string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
