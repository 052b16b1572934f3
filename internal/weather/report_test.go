package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, ts string, temp float64, cond string) ForecastEntry {
	t.Helper()
	tm, err := time.Parse(forecastTimeLayout, ts)
	require.NoError(t, err)
	return ForecastEntry{Time: tm, TempC: temp, Condition: cond}
}

func TestFormatCurrent(t *testing.T) {
	c := &Current{Place: "Paris", Country: "FR", TempC: 21.34, HumidityPct: 60, WindMS: 3.5}

	got := FormatCurrent("Alex", c)
	assert.Equal(t,
		"Weather for Paris (FR)\nHello, Alex, here is your weather:\nTemp: 21.3°C\nHumidity: 60%\nWind: 3.5 m/s",
		got)
}

func TestFormatCurrent_DefaultName(t *testing.T) {
	c := &Current{Place: "Oslo", Country: "NO", TempC: 4, HumidityPct: 80, WindMS: 7.2}
	assert.Contains(t, FormatCurrent("", c), "Hello, friend,")
}

func TestFormatForecast_NextThree(t *testing.T) {
	entries := []ForecastEntry{
		entry(t, "2026-09-01 12:00:00", 20.1, "Clouds"),
		entry(t, "2026-09-01 15:00:00", 22.5, "Clear"),
		entry(t, "2026-09-01 18:00:00", 19.0, "Rain"),
		entry(t, "2026-09-01 21:00:00", 16.4, "Rain"),
	}

	got := FormatForecast("Paris", entries)
	assert.Equal(t,
		"Forecast for Paris\n12:00  20.1°C  (Clouds)\n15:00  22.5°C  (Clear)\n18:00  19.0°C  (Rain)",
		got)
}

func TestForecastDates_Distinct(t *testing.T) {
	entries := []ForecastEntry{
		entry(t, "2026-09-03 09:00:00", 18, "Clear"),
		entry(t, "2026-09-01 12:00:00", 20, "Clouds"),
		entry(t, "2026-09-01 15:00:00", 21, "Clouds"),
		entry(t, "2026-09-02 09:00:00", 17, "Rain"),
		entry(t, "2026-09-02 12:00:00", 19, "Rain"),
	}

	assert.Equal(t, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, ForecastDates(entries))
}

func TestFormatDay_CanonicalHoursOnly(t *testing.T) {
	entries := []ForecastEntry{
		entry(t, "2026-09-01 06:00:00", 12.0, "Mist"),  // off-canonical hour
		entry(t, "2026-09-01 09:00:00", 15.0, "Clear"),
		entry(t, "2026-09-01 12:00:00", 20.0, "Clear"),
		entry(t, "2026-09-02 12:00:00", 21.0, "Rain"), // other date
		entry(t, "2026-09-01 21:00:00", 14.5, "Clouds"),
	}

	got := FormatDay("Paris", "2026-09-01", entries)
	assert.Equal(t,
		"Weather 2026-09-01 (Paris)\n09:00: 15.0°C, Clear\n12:00: 20.0°C, Clear\n21:00: 14.5°C, Clouds",
		got)
}

func TestFormatDay_NoMatchingEntries(t *testing.T) {
	entries := []ForecastEntry{entry(t, "2026-09-01 06:00:00", 12.0, "Mist")}
	assert.Equal(t, "Weather 2026-09-05 (Paris)", FormatDay("Paris", "2026-09-05", entries))
}
