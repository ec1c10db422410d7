// Package watch reports the wallet portfolio on a cron schedule.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// DefaultSchedule runs the watcher every fifteen minutes.
const DefaultSchedule = "*/15 * * * *"

// RoomID is the room the watcher queries providers for.
const RoomID = "watch"

// ReportFunc receives each portfolio snapshot. changed is false when the
// snapshot equals the previous one.
type ReportFunc func(ctx context.Context, report string, changed bool)

var parser = robfigcron.NewParser(
	robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
)

// Service polls a provider on a cron schedule.
type Service struct {
	schedule robfigcron.Schedule
	spec     string
	provider schema.Provider
	runtime  schema.Runtime
	onReport ReportFunc

	mu   sync.Mutex
	last string
}

// NewService validates spec and returns a watcher for provider.
// An empty spec uses DefaultSchedule.
func NewService(spec string, provider schema.Provider, rt schema.Runtime, onReport ReportFunc) (*Service, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse watch schedule %q: %w", spec, err)
	}
	return &Service{
		schedule: sched,
		spec:     spec,
		provider: provider,
		runtime:  rt,
		onReport: onReport,
	}, nil
}

// Start runs the schedule until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	c := robfigcron.New()
	c.Schedule(s.schedule, robfigcron.FuncJob(func() { s.RunOnce(ctx) }))
	c.Start()
	slog.Info("watch: started", "schedule", s.spec)

	<-ctx.Done()

	<-c.Stop().Done()
	slog.Info("watch: stopped")
	return ctx.Err()
}

// RunOnce fetches one snapshot and reports it. It returns false when the
// provider had nothing to contribute.
func (s *Service) RunOnce(ctx context.Context) (string, bool) {
	report, ok := s.provider.Get(ctx, s.runtime, schema.NewMemory(RoomID, RoomID, "portfolio"))
	if !ok {
		slog.Warn("watch: portfolio unavailable")
		return "", false
	}

	s.mu.Lock()
	changed := report != s.last
	s.last = report
	s.mu.Unlock()

	slog.Info("watch: portfolio snapshot", "changed", changed)
	if s.onReport != nil {
		s.onReport(ctx, report, changed)
	}
	return report, true
}
