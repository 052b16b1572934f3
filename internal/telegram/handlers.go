package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lyricss1/WeatherBot/internal/domain"
	"github.com/lyricss1/WeatherBot/internal/schedule"
	"github.com/lyricss1/WeatherBot/internal/store"
	"github.com/lyricss1/WeatherBot/internal/weather"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) answerCallback(id string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, ""))
}

// profile loads a user's profile; absent rows come back as (nil, nil), other
// storage failures are logged and also come back nil so handlers degrade to
// the "no profile" path instead of crashing the update loop.
func (r *Router) profile(ctx context.Context, chatID int64) *domain.Profile {
	p, err := r.repo.GetProfile(ctx, chatID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Error("get profile failed", zap.Int64("chat", chatID), zap.Error(err))
		}
		return nil
	}
	return p
}

// --- Onboarding ---

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	p := r.profile(ctx, chatID)
	if p != nil && p.Name != "" {
		r.setState(chatID, domain.StateIdle)
		r.sendText(chatID, "Welcome back, "+p.Name)
		r.sendText(chatID, menuText)
		return
	}

	r.sendText(chatID, welcomeText)
	r.setState(chatID, domain.StateAwaitingName)
}

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	switch r.getState(chatID) {
	case domain.StateAwaitingName:
		name := strings.TrimSpace(text)
		if name == "" {
			return
		}
		if err := r.repo.UpsertProfile(ctx, &domain.Profile{ChatID: chatID, Name: name}); err != nil {
			r.log.Error("save name failed", zap.Int64("chat", chatID), zap.Error(err))
			return
		}
		r.sendText(chatID, "Ok "+name+", now send your city:")
		r.setState(chatID, domain.StateAwaitingCity)

	case domain.StateAwaitingCity:
		city := strings.TrimSpace(text)
		if !r.validateCity(ctx, city) {
			// Provider outage blocks onboarding too; the user just retries.
			r.sendText(chatID, cityRetryText)
			return
		}
		if err := r.repo.UpsertProfile(ctx, &domain.Profile{ChatID: chatID, City: city}); err != nil {
			r.log.Error("save city failed", zap.Int64("chat", chatID), zap.Error(err))
			return
		}
		r.sendText(chatID, "Saved: "+city)
		r.setState(chatID, domain.StateIdle)
		r.sendText(chatID, menuText)

	default:
		// No pending conversation: ignore free-form text.
	}
}

// validateCity accepts a city only if a live current-weather query succeeds.
// Both the onboarding step and /setcity go through here.
func (r *Router) validateCity(ctx context.Context, city string) bool {
	if city == "" {
		return false
	}
	_, err := r.weather.Current(ctx, city)
	return err == nil
}

// --- Weather commands ---

func (r *Router) handleWeather(ctx context.Context, chatID int64) {
	p := r.profile(ctx, chatID)
	if !p.Configured() {
		r.sendText(chatID, noCityText)
		return
	}
	r.reportWeather(ctx, p)
}

// tickWeather runs on every monitor firing. Unlike /weather, a missing
// profile produces no message at all: the job may legitimately outlive a
// /reset until its cancellation is observed.
func (r *Router) tickWeather(ctx context.Context, chatID int64) {
	p := r.profile(ctx, chatID)
	if p == nil {
		return
	}
	if !p.Configured() {
		r.sendText(chatID, noCityText)
		return
	}
	r.reportWeather(ctx, p)
}

func (r *Router) reportWeather(ctx context.Context, p *domain.Profile) {
	cur, err := r.weather.Current(ctx, p.City)
	if err != nil {
		// Deliberate product behavior: provider trouble produces no reply at
		// all, so outages don't spam users on every poll tick. Don't "fix"
		// this into an error message.
		r.log.Debug("current weather unavailable", zap.Int64("chat", p.ChatID), zap.Error(err))
		return
	}
	r.sendText(p.ChatID, weather.FormatCurrent(p.Name, cur))
}

func (r *Router) handleForecast(ctx context.Context, chatID int64) {
	p := r.profile(ctx, chatID)
	if !p.Configured() {
		r.sendText(chatID, setCityFirstText)
		return
	}

	entries, err := r.weather.Forecast(ctx, p.City)
	if err != nil {
		r.log.Debug("forecast unavailable", zap.Int64("chat", chatID), zap.Error(err))
		return
	}
	r.sendText(chatID, weather.FormatForecast(p.City, entries))
}

func (r *Router) handleDays(ctx context.Context, chatID int64) {
	p := r.profile(ctx, chatID)
	if !p.Configured() {
		r.sendText(chatID, setCityFirstText)
		return
	}

	entries, err := r.weather.Forecast(ctx, p.City)
	if err != nil {
		r.log.Debug("forecast unavailable", zap.Int64("chat", chatID), zap.Error(err))
		return
	}

	msg := tgbotapi.NewMessage(chatID, daysPromptText)
	msg.ReplyMarkup = dayKeyboard(weather.ForecastDates(entries))
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleDayClick(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer r.answerCallback(cb.ID)

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	date := strings.TrimPrefix(cb.Data, dayCallbackPrefix)

	p := r.profile(ctx, chatID)
	if !p.Configured() {
		r.sendText(chatID, setCityFirstText)
		return
	}

	entries, err := r.weather.Forecast(ctx, p.City)
	if err != nil {
		r.log.Debug("forecast unavailable", zap.Int64("chat", chatID), zap.Error(err))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, weather.FormatDay(p.City, date, entries))
	_, _ = r.bot.Send(edit)
}

// --- City selection ---

func (r *Router) handleSetCity(ctx context.Context, chatID int64, text string) {
	parts := strings.SplitN(text, " ", 2)

	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		city := strings.TrimSpace(parts[1])
		if !r.validateCity(ctx, city) {
			r.sendText(chatID, cityNotFoundText)
			return
		}
		if err := r.repo.UpsertProfile(ctx, &domain.Profile{ChatID: chatID, City: city}); err != nil {
			r.log.Error("save city failed", zap.Int64("chat", chatID), zap.Error(err))
			return
		}
		r.sendText(chatID, "Updated: "+city)
		return
	}

	r.sendText(chatID, askCityText)
	r.setState(chatID, domain.StateAwaitingCity)
}

// --- Monitoring ---

func (r *Router) handleMonitor(ctx context.Context, chatID int64, text string) {
	if r.profile(ctx, chatID) == nil {
		return
	}

	args := strings.Fields(text)
	if len(args) != 2 {
		r.sendText(chatID, monitorUsageText)
		return
	}

	interval, err := domain.ParseHours(args[1])
	if err != nil {
		r.sendText(chatID, badNumberText)
		return
	}

	if err := r.jobs.Start(chatID, interval, r.MonitorTick); err != nil {
		if errors.Is(err, schedule.ErrBadInterval) {
			r.sendText(chatID, badNumberText)
			return
		}
		r.log.Error("start monitor failed", zap.Int64("chat", chatID), zap.Error(err))
		return
	}
	r.sendText(chatID, "Auto-update every "+args[1]+"h")
}

func (r *Router) handleStop(chatID int64) {
	if r.jobs.Cancel(chatID) {
		r.sendText(chatID, stoppedText)
		return
	}
	r.sendText(chatID, noTasksText)
}

func (r *Router) handleReset(ctx context.Context, chatID int64) {
	r.jobs.Cancel(chatID)
	if err := r.repo.DeleteProfile(ctx, chatID); err != nil {
		r.log.Error("delete profile failed", zap.Int64("chat", chatID), zap.Error(err))
	}
	r.setState(chatID, domain.StateIdle)
	r.sendText(chatID, resetText)
	r.handleStart(ctx, chatID)
}
