package weather

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultName greets users whose onboarding never stored a display name.
const DefaultName = "friend"

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// canonicalHours are the slices shown in the per-day view.
var canonicalHours = map[string]bool{
	"09:00": true,
	"12:00": true,
	"15:00": true,
	"18:00": true,
	"21:00": true,
}

// FormatCurrent renders a current-conditions report.
func FormatCurrent(name string, c *Current) string {
	if name == "" {
		name = DefaultName
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Weather for %s (%s)\n", c.Place, c.Country)
	fmt.Fprintf(&b, "Hello, %s, here is your weather:\n", name)
	fmt.Fprintf(&b, "Temp: %.1f°C\n", c.TempC)
	fmt.Fprintf(&b, "Humidity: %d%%\n", c.HumidityPct)
	fmt.Fprintf(&b, "Wind: %.1f m/s", c.WindMS)
	return b.String()
}

// FormatForecast renders the next three upcoming forecast slices.
func FormatForecast(city string, entries []ForecastEntry) string {
	lines := []string{"Forecast for " + city}
	for i, e := range entries {
		if i == 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s  %.1f°C  (%s)", e.Time.Format(hourLayout), e.TempC, e.Condition))
	}
	return strings.Join(lines, "\n")
}

// ForecastDates returns the distinct calendar dates present in the forecast
// window, sorted ascending, formatted as YYYY-MM-DD.
func ForecastDates(entries []ForecastEntry) []string {
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.Time.Format(dateLayout)] = true
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// FormatDay renders the canonical-hour slices for one selected date.
// Entries outside the date or off the canonical hours are dropped.
func FormatDay(city, date string, entries []ForecastEntry) string {
	lines := []string{"Weather " + date + " (" + city + ")"}
	for _, e := range entries {
		if e.Time.Format(dateLayout) != date {
			continue
		}
		hm := e.Time.Format(hourLayout)
		if !canonicalHours[hm] {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %.1f°C, %s", hm, e.TempC, e.Condition))
	}
	return strings.Join(lines, "\n")
}
