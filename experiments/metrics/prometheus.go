package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports search counters labelled by agent.
type Prometheus struct {
	episodes     *prometheus.CounterVec
	fullPlayouts *prometheus.CounterVec
	searches     *prometheus.HistogramVec
}

func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		episodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pacman",
			Subsystem: "search",
			Name:      "episodes_total",
			Help:      "Search episodes (simulation cycles, generations or probes) completed.",
		}, []string{"agent"}),
		fullPlayouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pacman",
			Subsystem: "search",
			Name:      "full_playouts_total",
			Help:      "Rollouts that reached a terminal state before the cutoff.",
		}, []string{"agent"}),
		searches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pacman",
			Subsystem: "search",
			Name:      "decision_seconds",
			Help:      "Wall time spent choosing one action.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"agent"}),
	}
	for _, c := range []prometheus.Collector{p.episodes, p.fullPlayouts, p.searches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Collector wraps inner so that every recorded event is also exported.
func (p *Prometheus) Collector(agent string, inner Collector) Collector {
	return &promCollector{
		Collector:    inner,
		episodes:     p.episodes.WithLabelValues(agent),
		fullPlayouts: p.fullPlayouts.WithLabelValues(agent),
		searches:     p.searches.WithLabelValues(agent),
	}
}

type promCollector struct {
	Collector
	episodes     prometheus.Counter
	fullPlayouts prometheus.Counter
	searches     prometheus.Observer
}

func (c *promCollector) AddEpisode() {
	c.Collector.AddEpisode()
	c.episodes.Inc()
}

func (c *promCollector) AddFullPlayout() {
	c.Collector.AddFullPlayout()
	c.fullPlayouts.Inc()
}

func (c *promCollector) Complete() SearchMetric {
	metric := c.Collector.Complete()
	c.searches.Observe(metric.Duration.Seconds())
	return metric
}
