package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lyricss1/WeatherBot/internal/domain"
	"github.com/lyricss1/WeatherBot/internal/metrics"
	"github.com/lyricss1/WeatherBot/internal/schedule"
	"github.com/lyricss1/WeatherBot/internal/store"
	"github.com/lyricss1/WeatherBot/internal/weather"
)

// BotAPI is the slice of the Telegram client the router actually uses.
// *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router wires Telegram updates to handlers and owns the per-user onboarding
// state. Commands are recognized in any onboarding state; free-form text is
// consumed by the pending conversation step, if any, and ignored otherwise.
type Router struct {
	bot     BotAPI
	log     *zap.Logger
	repo    store.Repo
	weather weather.Service
	jobs    *schedule.Registry
	met     *metrics.Metrics

	mu    sync.RWMutex
	state map[int64]domain.OnboardingState
}

// NewRouter creates a new Telegram router. met may be nil.
func NewRouter(bot BotAPI, log *zap.Logger, repo store.Repo, svc weather.Service, jobs *schedule.Registry, met *metrics.Metrics) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		repo:    repo,
		weather: svc,
		jobs:    jobs,
		met:     met,
		state:   make(map[int64]domain.OnboardingState),
	}
}

// setState sets the onboarding state for a chat (non-persistent, in-memory).
func (r *Router) setState(chatID int64, s domain.OnboardingState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == domain.StateIdle {
		delete(r.state, chatID)
		return
	}
	r.state[chatID] = s
}

// getState returns the current onboarding state for a chat.
func (r *Router) getState(chatID int64) domain.OnboardingState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.met.Command("start")
			r.handleStart(ctx, chatID)
		case strings.HasPrefix(text, "/weather"):
			r.met.Command("weather")
			r.handleWeather(ctx, chatID)
		case strings.HasPrefix(text, "/forecast"):
			r.met.Command("forecast")
			r.handleForecast(ctx, chatID)
		case strings.HasPrefix(text, "/days"):
			r.met.Command("days")
			r.handleDays(ctx, chatID)
		case strings.HasPrefix(text, "/setcity"):
			r.met.Command("setcity")
			r.handleSetCity(ctx, chatID, text)
		case strings.HasPrefix(text, "/monitor"):
			r.met.Command("monitor")
			r.handleMonitor(ctx, chatID, text)
		case strings.HasPrefix(text, "/stop"):
			r.met.Command("stop")
			r.handleStop(chatID)
		case strings.HasPrefix(text, "/reset"):
			r.met.Command("reset")
			r.handleReset(ctx, chatID)
		default:
			// Free-form text feeds the onboarding conversation, if one is pending.
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if strings.HasPrefix(cb.Data, dayCallbackPrefix) {
			r.met.Command("day_click")
			r.handleDayClick(ctx, cb)
			return
		}
		// Unknown callback — ignore silently
	}
}

// MonitorTick is the scheduled-job action: one weather push for one user.
// Registered with the job registry by /monitor.
func (r *Router) MonitorTick(userID int64) {
	r.met.MonitorTick()
	r.tickWeather(context.Background(), userID)
}
