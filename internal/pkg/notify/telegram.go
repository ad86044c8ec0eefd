package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmarkin/scorestream/internal/pkg/config"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier alerts operators when a provider keeps failing and when it
// recovers. A nil notifier is valid and does nothing, so call sites never
// need to branch on whether alerts are configured.
type TelegramNotifier struct {
	bot       *tgbotapi.BotAPI
	chatID    int64
	threshold int

	mu sync.Mutex
	// alerted tracks providers already reported as down, so each outage
	// produces one alert and one recovery message.
	alerted map[string]bool

	// sendMu serializes deliveries and guards lastSend. Separate from mu so
	// the rate-limit sleep never blocks the failure-accounting path.
	sendMu       sync.Mutex
	lastSend     time.Time
	sendInterval time.Duration

	// deliver performs one message delivery. Replaced in tests.
	deliver func(text string)
}

func NewTelegramNotifier(cfg *config.NotifyConfig) *TelegramNotifier {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		slog.Info("Telegram alerts disabled (no token or chat id configured)")
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		slog.Error("Failed to create telegram bot, alerts disabled", "error", err)
		return nil
	}
	bot.Debug = false

	n := &TelegramNotifier{
		bot:          bot,
		chatID:       cfg.TelegramChatID,
		threshold:    cfg.FailureThreshold,
		alerted:      make(map[string]bool),
		sendInterval: telegramSendInterval,
	}
	n.deliver = n.deliverTelegram
	return n
}

// ProviderFailed is wired to the scheduler's OnFailure hook.
func (n *TelegramNotifier) ProviderFailed(provider string, err error, consecutive int) {
	if n == nil || consecutive < n.threshold {
		return
	}

	n.mu.Lock()
	already := n.alerted[provider]
	n.alerted[provider] = true
	n.mu.Unlock()
	if already {
		return
	}

	n.send(fmt.Sprintf("⚠️ Provider %s failing: %d consecutive poll cycles (last error: %v). Serving stale data until it recovers.", provider, consecutive, err))
}

// ProviderRecovered is wired to the scheduler's OnRecovery hook.
func (n *TelegramNotifier) ProviderRecovered(provider string, afterFailures int) {
	if n == nil {
		return
	}

	n.mu.Lock()
	wasAlerted := n.alerted[provider]
	delete(n.alerted, provider)
	n.mu.Unlock()
	if !wasAlerted {
		return
	}

	n.send(fmt.Sprintf("✅ Provider %s recovered after %d failed cycles.", provider, afterFailures))
}

// send dispatches the delivery on its own goroutine. The caller is the
// scheduler's poll loop; a slow or rate-limited Telegram API must not delay
// the provider's next cycle.
func (n *TelegramNotifier) send(text string) {
	go func() {
		n.sendMu.Lock()
		defer n.sendMu.Unlock()
		if since := time.Since(n.lastSend); since < n.sendInterval {
			time.Sleep(n.sendInterval - since)
		}
		n.lastSend = time.Now()
		n.deliver(text)
	}()
}

func (n *TelegramNotifier) deliverTelegram(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Warn("Failed to send telegram alert", "error", err)
	}
}
