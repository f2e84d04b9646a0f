// internal/httpserver/metrics.go
//
// Prometheus metrics served on /metrics.

package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/internal/store"
)

// metrics uses its own registry so several servers can coexist in tests.
type metrics struct {
	reg         *prometheus.Registry
	sessions    prometheus.Counter
	keys        *prometheus.CounterVec
	finished    *prometheus.CounterVec
	wordLists   *prometheus.CounterVec
	catalogAdds prometheus.Counter
}

func newMetrics(st store.Store) *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	m := &metrics{
		reg: reg,
		sessions: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_sessions_started_total",
			Help: "Game sessions created.",
		}),
		keys: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_keys_total",
			Help: "Key events received, by whether they changed the game.",
		}, []string{"result"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_games_finished_total",
			Help: "Games that reached a terminal phase.",
		}, []string{"outcome"}),
		wordLists: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_word_lists_served_total",
			Help: "Word lists served to clients.",
		}, []string{"kind"}),
		catalogAdds: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_catalog_words_added_total",
			Help: "Words inserted into the catalog.",
		}),
	}
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordle_sessions_live",
		Help: "Sessions currently held in memory.",
	}, func() float64 { return float64(st.Len()) })
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
