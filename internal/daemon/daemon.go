package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheerlink/cheerlink/internal/api"
	"github.com/cheerlink/cheerlink/internal/app/engagement"
	"github.com/cheerlink/cheerlink/internal/app/gacha"
	"github.com/cheerlink/cheerlink/internal/app/session"
	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/health"
	"github.com/cheerlink/cheerlink/internal/infra/haptic"
	_ "github.com/cheerlink/cheerlink/internal/infra/metrics" // Register Prometheus metrics
	"github.com/cheerlink/cheerlink/internal/infra/sqlite"
)

// Daemon is the core CheerLink runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Session *session.Session
	Engine  *engagement.Service
	Gacha   *gacha.Service
	Health  *health.Checker
	Server  *api.Server
	Version string
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	db, err := sqlite.Open(cheerHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sess, err := session.Open(db, time.Now())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}

	engine := engagement.NewService(sess, tuningFromConfig(cfg.Engagement))
	engine.SetScheduler(func(d time.Duration, cb func()) {
		time.AfterFunc(d, cb)
	})

	var sink domain.FeedbackSink
	if cfg.Feedback.BridgeURL != "" {
		sink = haptic.NewWebhookSink(cfg.Feedback.BridgeURL)
	} else {
		log.Printf("[daemon] no haptic bridge configured, feedback goes to the log")
		sink = haptic.NewLogSink()
	}
	engine.SetTrigger(engagement.NewTrigger(sink))

	g := gacha.NewService(sess, db)

	srv := api.NewServer(sess, engine, g, version)
	srv.SetFeedbackSink(sink)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	d := &Daemon{
		Config:  cfg,
		DB:      db,
		Session: sess,
		Engine:  engine,
		Gacha:   g,
		Server:  srv,
		Version: version,
	}

	d.Health = health.NewChecker(db, cheerHome())
	srv.SetChecker(d.Health)

	return d, nil
}

// tuningFromConfig converts config millisecond values to engine tuning,
// falling back to defaults for missing or nonsense values.
func tuningFromConfig(ec EngagementConfig) engagement.Tuning {
	t := engagement.DefaultTuning()
	if ec.WindowMS > 0 {
		t.Window = time.Duration(ec.WindowMS) * time.Millisecond
	}
	if ec.LevelDownDelayMS > 0 {
		t.LevelDownDelay = time.Duration(ec.LevelDownDelayMS) * time.Millisecond
	}
	valid := true
	for i, v := range ec.Thresholds {
		if v <= 0 || (i > 0 && v <= ec.Thresholds[i-1]) {
			valid = false
		}
	}
	if valid {
		t.Thresholds = ec.Thresholds
	}
	return t
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("CheerLink serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
