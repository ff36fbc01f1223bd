package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cubesurvival/internal/logging"
	"cubesurvival/internal/sim"
)

const namespace = "cubesurvival"

// Exporter holds the game's Prometheus metrics on a private registry.
type Exporter struct {
	reg *prometheus.Registry

	shots       prometheus.Counter
	kills       *prometheus.CounterVec
	enemyHits   *prometheus.CounterVec
	playerHits  *prometheus.CounterVec
	dashes      prometheus.Counter
	pickups     *prometheus.CounterVec
	gamesOver   prometheus.Counter
	highScores  prometheus.Counter
	modeChanges *prometheus.CounterVec

	wave      prometheus.Gauge
	enemies   prometheus.Gauge
	particles prometheus.Gauge
	score     prometheus.Gauge
	highScore prometheus.Gauge

	tickDuration prometheus.Histogram
}

func NewExporter() *Exporter {
	e := &Exporter{
		reg: prometheus.NewRegistry(),
		shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Projectiles fired.",
		}),
		kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Enemies destroyed by projectiles.",
		}, []string{"kind"}),
		enemyHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemy_hits_total",
			Help:      "Non-lethal projectile hits.",
		}, []string{"kind"}),
		playerHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_hits_total",
			Help:      "Enemy contacts with the player.",
		}, []string{"absorbed"}),
		dashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashes_total",
			Help:      "Dashes started.",
		}),
		pickups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_collected_total",
			Help:      "Power-ups picked up.",
		}, []string{"kind"}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_over_total",
			Help:      "Runs that ended.",
		}),
		highScores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "new_high_scores_total",
			Help:      "Runs that beat the stored high score.",
		}),
		modeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_changes_total",
			Help:      "Mode transitions by target mode.",
		}, []string{"mode"}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wave",
			Help:      "Current wave.",
		}),
		enemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enemies",
			Help:      "Live enemies.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Live particles.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Score of the current run.",
		}),
		highScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "high_score",
			Help:      "Best score so far.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick.",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167},
		}),
	}
	e.reg.MustRegister(
		e.shots, e.kills, e.enemyHits, e.playerHits, e.dashes, e.pickups,
		e.gamesOver, e.highScores, e.modeChanges,
		e.wave, e.enemies, e.particles, e.score, e.highScore,
		e.tickDuration,
	)
	return e
}

// Registry exposes the private registry, mainly for tests.
func (e *Exporter) Registry() *prometheus.Registry { return e.reg }

// Attach counts the session's events.
func (e *Exporter) Attach(s *sim.Session) {
	bus := s.Events
	bus.Subscribe(sim.EventShot, func(sim.Event) { e.shots.Inc() })
	bus.Subscribe(sim.EventDash, func(sim.Event) { e.dashes.Inc() })
	bus.Subscribe(sim.EventEnemyKilled, func(ev sim.Event) {
		e.kills.WithLabelValues(sim.EnemyKind(ev.Data).String()).Inc()
	})
	bus.Subscribe(sim.EventEnemyHit, func(ev sim.Event) {
		e.enemyHits.WithLabelValues(sim.EnemyKind(ev.Data).String()).Inc()
	})
	bus.Subscribe(sim.EventPlayerHit, func(ev sim.Event) {
		e.playerHits.WithLabelValues(strconv.FormatBool(ev.Data != 0)).Inc()
	})
	bus.Subscribe(sim.EventPowerUpCollected, func(ev sim.Event) {
		e.pickups.WithLabelValues(sim.PowerUpKind(ev.Data).String()).Inc()
	})
	bus.Subscribe(sim.EventGameOver, func(sim.Event) { e.gamesOver.Inc() })
	bus.Subscribe(sim.EventNewHighScore, func(sim.Event) { e.highScores.Inc() })
	bus.Subscribe(sim.EventModeChanged, func(ev sim.Event) {
		e.modeChanges.WithLabelValues(sim.Mode(ev.Data).String()).Inc()
	})
	e.highScore.Set(float64(s.HighScore))
}

// ObserveTick records how long a tick took and samples the session gauges.
func (e *Exporter) ObserveTick(s *sim.Session, took time.Duration) {
	e.tickDuration.Observe(took.Seconds())
	e.wave.Set(float64(s.Wave))
	e.enemies.Set(float64(len(s.Enemies)))
	e.particles.Set(float64(s.Particles.Len()))
	e.score.Set(s.Score)
	e.highScore.Set(float64(s.HighScore))
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.LogInfo("metrics available on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
