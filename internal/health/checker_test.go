package health_test

import (
	"context"
	"testing"
	"time"

	"github.com/cheerlink/cheerlink/internal/health"
	"github.com/cheerlink/cheerlink/internal/infra/sqlite"
)

func TestChecker_AllHealthy(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := health.NewChecker(db, dir)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(c.Statuses()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("expected overall healthy")
	}
}

func TestChecker_ClosedDatabaseUnhealthy(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.Close()

	c := health.NewChecker(db, dir)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(c.Statuses()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	if c.IsHealthy() {
		t.Error("expected unhealthy with a closed database")
	}
}
