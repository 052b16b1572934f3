package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"

	endpointCurrent  = "weather"
	endpointForecast = "forecast"

	// OpenWeatherMap forecast timestamps: "2006-01-02 15:04:05" in UTC.
	forecastTimeLayout = "2006-01-02 15:04:05"
)

// Client queries OpenWeatherMap by place name. Every call carries a bounded
// timeout so a hung provider cannot stall a user's timer indefinitely.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
	rec     Recorder
}

var _ Service = (*Client)(nil)

// NewClient builds a Client. rec may be nil.
func NewClient(apiKey string, timeout time.Duration, log *zap.Logger, rec Recorder) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
		rec:     rec,
	}
}

type currentPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastPayload struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// Current fetches current conditions for a city. A well-formed result is also
// what onboarding uses to validate a city name.
func (c *Client) Current(ctx context.Context, city string) (*Current, error) {
	var p currentPayload
	if err := c.get(ctx, endpointCurrent, city, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.New("malformed current weather payload")
	}
	return &Current{
		Place:       p.Name,
		Country:     p.Sys.Country,
		TempC:       p.Main.Temp,
		HumidityPct: p.Main.Humidity,
		WindMS:      p.Wind.Speed,
	}, nil
}

// Forecast fetches the ordered 3-hour forecast slices for a city.
func (c *Client) Forecast(ctx context.Context, city string) ([]ForecastEntry, error) {
	var p forecastPayload
	if err := c.get(ctx, endpointForecast, city, &p); err != nil {
		return nil, err
	}
	if len(p.List) == 0 {
		return nil, errors.New("empty forecast payload")
	}

	entries := make([]ForecastEntry, 0, len(p.List))
	for _, it := range p.List {
		ts, err := time.Parse(forecastTimeLayout, it.DtTxt)
		if err != nil {
			continue
		}
		cond := ""
		if len(it.Weather) > 0 {
			cond = it.Weather[0].Main
		}
		entries = append(entries, ForecastEntry{Time: ts, TempC: it.Main.Temp, Condition: cond})
	}
	if len(entries) == 0 {
		return nil, errors.New("malformed forecast payload")
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, endpoint, city string, out any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		c.record(endpoint, err)
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.record(endpoint, err)
		return fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("weather request: status %d", resp.StatusCode)
		c.record(endpoint, err)
		if c.log != nil {
			c.log.Debug("provider rejected request",
				zap.String("endpoint", endpoint),
				zap.Int("status", resp.StatusCode),
			)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.record(endpoint, err)
		return fmt.Errorf("weather decode: %w", err)
	}
	c.record(endpoint, nil)
	return nil
}

func (c *Client) record(endpoint string, err error) {
	if c.rec == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.rec.ProviderRequest(endpoint, result)
}
