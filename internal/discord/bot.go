package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/NgigiN/smscampaign/internal/campaign"
	"github.com/NgigiN/smscampaign/internal/config"
	"github.com/NgigiN/smscampaign/internal/export"
	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

const listLimit = 10

const usage = "Usage:\n" +
	"Paste one or more alerts (add `u: <user type>` under an alert to tag it)\n" +
	"!summary - totals and debit/credit split\n" +
	"!list [name] - latest transactions, pinned first\n" +
	"!pin <id> - pin or unpin a transaction\n" +
	"!delete <id> - delete a transaction\n" +
	"!undo - undo the last change\n" +
	"!templates - list message templates"

type Bot struct {
	session   *discordgo.Session
	campaign  *campaign.Session
	log       *logrus.Logger
	channelID string
	currency  string
	startTime time.Time
	health    *http.Server
}

func NewBot(cfg *config.Config, c *campaign.Session, log *logrus.Logger) (*Bot, error) {
	if err := cfg.RequireDiscord(); err != nil {
		return nil, err
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		campaign:  c,
		log:       log,
		channelID: cfg.DiscordChannelId,
		currency:  cfg.Currency,
		startTime: time.Now(),
	}
	bot.health = &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           bot.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	go b.startHealthServer()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.health.Shutdown(ctx); err != nil {
		b.log.WithError(err).Warn("Bot.Stop.Health")
	}
	b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return //bot's messages
	}

	if m.ChannelID != b.channelID {
		return //specific to the channel
	}

	reply := b.dispatch(m.Content)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		b.log.WithError(err).Error("Bot.handleMessage.Send")
	}
}

// dispatch answers one channel message.
func (b *Bot) dispatch(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if !strings.HasPrefix(content, "!") {
		return b.handleAlerts(content)
	}

	args := strings.Fields(content)
	switch args[0] {
	case "!summary":
		return b.handleSummary()
	case "!list":
		return b.handleList(strings.Join(args[1:], " "))
	case "!pin":
		return b.withID(args, b.handlePin)
	case "!delete":
		return b.withID(args, b.handleDelete)
	case "!undo":
		return b.handleUndo()
	case "!templates":
		return b.handleTemplates()
	default:
		return usage
	}
}

func (b *Bot) withID(args []string, fn func(id int64) string) string {
	if len(args) != 2 {
		return fmt.Sprintf("Usage: %s <id>", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Sprintf("Invalid id: %s", args[1])
	}
	return fn(id)
}

func (b *Bot) handleAlerts(content string) string {
	blocks := sms.SplitBatch(strings.Split(content, "\n"))
	if len(blocks) == 0 {
		return fmt.Sprintf("Invalid alert: %v", sms.ErrUnrecognised)
	}
	if len(blocks) == 1 {
		tx, err := b.logAlert(blocks[0])
		if err != nil {
			return fmt.Sprintf("Invalid alert: %v", err)
		}
		return b.sentMessage(tx)
	}

	successCount := 0
	var errs []string
	for i, block := range blocks {
		if _, err := b.logAlert(block); err != nil {
			errs = append(errs, fmt.Sprintf("Alert %d: %v", i+1, err))
			continue
		}
		successCount++
	}

	response := "📊 **Batch Processing Complete**\n"
	response += fmt.Sprintf("✅ **Logged**: %d alerts\n", successCount)
	if len(errs) > 0 {
		response += fmt.Sprintf("❌ **Failed**: %d alerts\n**Errors:**\n", len(errs))
		for _, e := range errs {
			response += fmt.Sprintf("• %s\n", e)
		}
	}
	return response
}

func (b *Bot) logAlert(block sms.Block) (ledger.Transaction, error) {
	alert, err := sms.Parse(b.campaign.Templates(), block.Message)
	if err != nil {
		return ledger.Transaction{}, err
	}
	alert.UserType = sms.ParseMetadata(block.Metadata)
	tx, err := b.campaign.Add(alert.Draft())
	if err != nil && !errors.Is(err, campaign.ErrPersist) {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

func (b *Bot) sentMessage(tx ledger.Transaction) string {
	templates := b.campaign.Templates()
	return fmt.Sprintf("📨 [%s] #%d %s", tx.Status, tx.ID, sms.Render(templates[0], tx))
}

func (b *Bot) handleSummary() string {
	s := b.campaign.Summary()
	if s.TotalCount == 0 {
		return "No transactions found."
	}
	response := "📊 **Campaign Summary**\n\n"
	response += fmt.Sprintf("**Debited**: %s (%d)\n", export.FormatMoney(s.DebitedSum, b.currency), s.DebitedCount)
	response += fmt.Sprintf("**Credited**: %s (%d)\n", export.FormatMoney(s.CreditedSum, b.currency), s.CreditedCount)
	response += fmt.Sprintf("**Split**: %.0f%% debited / %.0f%% credited", s.DebitedPercent, s.CreditedPercent)
	return response
}

func (b *Bot) handleList(query string) string {
	records := b.campaign.View(ledger.Filter{Query: query, Type: "all"})
	if len(records) == 0 {
		return "No transactions found."
	}

	limit := listLimit
	if len(records) < limit {
		limit = len(records)
	}

	response := "📋 **Transactions**\n\n"
	for _, tx := range records[:limit] {
		pin := ""
		if b.campaign.IsPinned(tx.ID) {
			pin = "📌 "
		}
		response += fmt.Sprintf("• %s#%d **%s** %s %s at %s [%s]\n",
			pin, tx.ID, export.FormatMoney(tx.Amount, b.currency), tx.Type, tx.Name, tx.Bank, tx.Status)
	}
	if len(records) > limit {
		response += fmt.Sprintf("... and %d more transactions\n", len(records)-limit)
	}
	return response
}

func (b *Bot) handlePin(id int64) string {
	pinned, err := b.campaign.TogglePin(id)
	if err != nil && !errors.Is(err, campaign.ErrPersist) {
		return fmt.Sprintf("Failed to pin %d: %v", id, err)
	}
	if pinned {
		return fmt.Sprintf("📌 Pinned %d", id)
	}
	return fmt.Sprintf("Unpinned %d", id)
}

func (b *Bot) handleDelete(id int64) string {
	if err := b.campaign.Delete(id); err != nil && !errors.Is(err, campaign.ErrPersist) {
		return fmt.Sprintf("Failed to delete %d: %v", id, err)
	}
	return fmt.Sprintf("🗑️ Deleted %d. Use !undo to restore it.", id)
}

func (b *Bot) handleUndo() string {
	err := b.campaign.Undo()
	if errors.Is(err, ledger.ErrEmptyUndo) {
		return "Nothing to undo."
	}
	if err != nil && !errors.Is(err, campaign.ErrPersist) {
		return fmt.Sprintf("Failed to undo: %v", err)
	}
	return fmt.Sprintf("↩️ Undone. %d transactions.", len(b.campaign.Records()))
}

func (b *Bot) handleTemplates() string {
	response := "📝 **Templates**\n"
	for i, t := range b.campaign.Templates() {
		response += fmt.Sprintf("%d. %s\n", i, t)
	}
	return response
}

type healthResponse struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	DiscordConnected bool   `json:"discord_connected"`
	Transactions     int    `json:"transactions"`
	Timestamp        string `json:"timestamp"`
}

func (b *Bot) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", b.healthHandler)
	return mux
}

func (b *Bot) healthHandler(w http.ResponseWriter, r *http.Request) {
	connected := b.session != nil && b.session.State != nil
	resp := healthResponse{
		Status:           "healthy",
		Uptime:           time.Since(b.startTime).String(),
		DiscordConnected: connected,
		Transactions:     len(b.campaign.Records()),
		Timestamp:        time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	// Check if Discord connection is alive
	if !connected {
		resp.Status = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.log.WithError(err).Error("Bot.healthHandler.Encode")
	}
}

func (b *Bot) startHealthServer() {
	b.log.WithField("addr", b.health.Addr).Info("Bot.HealthServer.listening")
	if err := b.health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		b.log.WithError(err).Error("Bot.HealthServer.listen error")
	}
}
