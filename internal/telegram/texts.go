package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// UI texts in English
const (
	welcomeText = "Welcome. Let's get started.\nEnter your name:"
	menuText    = "Commands:\n" +
		"/weather - now\n" +
		"/days - select date\n" +
		"/forecast - next hours\n" +
		"/monitor h - auto\n" +
		"/stop - stop auto\n" +
		"/setcity - change city\n" +
		"/reset - clear data"

	noCityText       = "No city set. Use /setcity"
	setCityFirstText = "Set city first."
	cityNotFoundText = "City not found."
	cityRetryText    = "City not found. Try again:"
	askCityText      = "Enter city:"

	monitorUsageText = "Usage: /monitor hours"
	badNumberText    = "Bad number."
	stoppedText      = "Stopped."
	noTasksText      = "No tasks."
	resetText        = "Data cleared. Restarting…"

	daysPromptText    = "Select date:"
	dayCallbackPrefix = "day_"
)

// dayKeyboard builds one row per selectable forecast date.
func dayKeyboard(dates []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(d, dayCallbackPrefix+d),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
