package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's Prometheus instruments on a private registry.
// A nil *Metrics is safe to use everywhere and records nothing.
type Metrics struct {
	registry *prom.Registry

	commands *prom.CounterVec
	ticks    prom.Counter
	provider *prom.CounterVec
	monitors prom.Gauge
}

// New constructs and registers all instruments.
func New() *Metrics {
	m := &Metrics{registry: prom.NewRegistry()}

	m.commands = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "weatherbot",
		Name:      "commands_total",
		Help:      "Handled bot commands by name",
	}, []string{"command"})
	m.ticks = prom.NewCounter(prom.CounterOpts{
		Namespace: "weatherbot",
		Name:      "monitor_ticks_total",
		Help:      "Scheduled monitor firings",
	})
	m.provider = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "weatherbot",
		Name:      "provider_requests_total",
		Help:      "Weather provider calls by endpoint and result",
	}, []string{"endpoint", "result"})
	m.monitors = prom.NewGauge(prom.GaugeOpts{
		Namespace: "weatherbot",
		Name:      "active_monitors",
		Help:      "Currently registered per-user monitor jobs",
	})

	m.registry.MustRegister(m.commands, m.ticks, m.provider, m.monitors)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prom.Registry {
	if m == nil {
		return prom.NewRegistry()
	}
	return m.registry
}

func (m *Metrics) Command(name string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(name).Inc()
}

func (m *Metrics) MonitorTick() {
	if m == nil {
		return
	}
	m.ticks.Inc()
}

func (m *Metrics) ProviderRequest(endpoint, result string) {
	if m == nil {
		return
	}
	m.provider.WithLabelValues(endpoint, result).Inc()
}

func (m *Metrics) ActiveMonitors(n int) {
	if m == nil {
		return
	}
	m.monitors.Set(float64(n))
}
