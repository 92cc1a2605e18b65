package notification

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"

	"f1telemetrycompare/pkg/model"
	"f1telemetrycompare/pkg/pubsub"
	"f1telemetrycompare/pkg/settings"
)

type Lister interface {
	ListFollowers(driver string) ([]settings.TelegramUser, error)
}

// Manager pushes a message to every chat following either driver when a new
// comparison result is published.
type Manager struct {
	ctx    context.Context
	lister Lister
	bot    *tgbotapi.BotAPI
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, lister Lister) *Manager {
	return &Manager{
		ctx:    ctx,
		bot:    bot,
		lister: lister,
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	readyChan := pubsub.ComparisonPubSub.Subscribe(pubsub.PubSubComparisonTopic)
	for {
		select {
		case <-exitChan:
			return
		case ready := <-readyChan:
			m.handleComparison(ready)
		}
	}
}

func (m *Manager) handleComparison(ready model.ComparisonReady) {
	recipients := m.followersOf(ready.Result.DriverA, ready.Result.DriverB)
	if len(recipients) == 0 {
		return
	}
	log.Printf("Sending comparison for %s vs %s to %d telegram users\n", ready.Result.DriverA, ready.Result.DriverB, len(recipients))

	if err := m.sendNotification(recipients, ready); err != nil {
		log.Printf("Error notifying users: %s", err.Error())
	}
}

// followersOf merges both drivers' follower lists, keeping each user once.
func (m *Manager) followersOf(drivers ...string) []settings.TelegramUser {
	seen := map[string]bool{}
	recipients := []settings.TelegramUser{}
	for _, driver := range drivers {
		users, err := m.lister.ListFollowers(driver)
		if err != nil {
			log.Printf("Error listing followers of %s: %s", driver, err.Error())
			continue
		}
		for _, user := range users {
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			recipients = append(recipients, user)
		}
	}
	return recipients
}

func (m *Manager) sendNotification(recipients []settings.TelegramUser, ready model.ComparisonReady) error {
	tg := &Telegram{}
	tg.SetClient(m.bot)

	for _, user := range recipients {
		chatID, _ := strconv.ParseInt(user.ChatID, 0, 64)
		tg.AddReceivers(chatID)
	}

	n := notify.NewWithServices(tg)
	return n.Send(m.ctx, "Nueva comparación disponible:", ready.String())
}
