package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livequiz_sessions_created_total",
		Help: "Number of quiz sessions created.",
	})
	sessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livequiz_sessions_evicted_total",
		Help: "Number of quiz sessions evicted from the registry.",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "livequiz_active_sessions",
		Help: "Number of live sessions currently in the registry.",
	})
	playersJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livequiz_players_joined_total",
		Help: "Number of players that joined a session lobby.",
	})
	answersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livequiz_answers_submitted_total",
		Help: "Number of accepted answer submissions.",
	})
)
