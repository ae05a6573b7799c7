package decoder

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the optional timing/counter surface spec §7 allows
// ("optionally timing counters for the emitting/non-emitting phases").
// A Decoder constructed with a nil *Metrics runs identically, just
// unobserved; every method below is nil-receiver safe.
type Metrics struct {
	decodesTotal       prometheus.Counter
	framesDecodedTotal prometheus.Counter
	tokensPrunedTotal  prometheus.Counter
	emittingSeconds    prometheus.Histogram
	nonemittingSeconds prometheus.Histogram
}

// NewMetrics registers the decoder's collectors against reg and
// returns a Metrics ready to pass to NewWithConfig. reg must not be nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decodesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beamdecoder",
			Name:      "decodes_total",
			Help:      "Number of utterances decoded.",
		}),
		framesDecodedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beamdecoder",
			Name:      "frames_decoded_total",
			Help:      "Number of acoustic frames consumed across all decodes.",
		}),
		tokensPrunedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beamdecoder",
			Name:      "tokens_pruned_total",
			Help:      "Number of token-arrivals discarded by beam or cutoff pruning.",
		}),
		emittingSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beamdecoder",
			Name:      "process_emitting_seconds",
			Help:      "Wall-clock time spent per ProcessEmitting call.",
			Buckets:   prometheus.DefBuckets,
		}),
		nonemittingSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beamdecoder",
			Name:      "process_nonemitting_seconds",
			Help:      "Wall-clock time spent per ProcessNonemitting call in the frame loop.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.decodesTotal,
		m.framesDecodedTotal,
		m.tokensPrunedTotal,
		m.emittingSeconds,
		m.nonemittingSeconds,
	)
	return m
}

func (m *Metrics) observeDecode() {
	if m == nil {
		return
	}
	m.decodesTotal.Inc()
}

func (m *Metrics) observeFrame() {
	if m == nil {
		return
	}
	m.framesDecodedTotal.Inc()
}

func (m *Metrics) observePruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tokensPrunedTotal.Add(float64(n))
}

func (m *Metrics) observeEmitting(seconds float64) {
	if m == nil {
		return
	}
	m.emittingSeconds.Observe(seconds)
}

func (m *Metrics) observeNonemitting(seconds float64) {
	if m == nil {
		return
	}
	m.nonemittingSeconds.Observe(seconds)
}
