package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Poller defaults.
const (
	DefaultInterval   = 1500 * time.Millisecond
	DefaultStaleAfter = 10 * time.Second
)

// Sink receives newly completed location ids.
type Sink interface {
	LocationChecks(ctx context.Context, ids []int) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ids []int) error

// LocationChecks calls f.
func (f SinkFunc) LocationChecks(ctx context.Context, ids []int) error { return f(ctx, ids) }

// Poller watches the SavedVariables file and forwards new checks to a Sink.
// The game rewrites the file on reload; a change older than StaleAfter is
// left over from an earlier session and ignored.
type Poller struct {
	Path       string
	Interval   time.Duration
	StaleAfter time.Duration
	Tracker    *Tracker
	Sink       Sink
	Log        *slog.Logger

	now     func() time.Time
	lastMod time.Time
}

// NewPoller creates a poller with the default timings.
func NewPoller(path string, sink Sink, log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		Path:       path,
		Interval:   DefaultInterval,
		StaleAfter: DefaultStaleAfter,
		Tracker:    NewTracker(log),
		Sink:       sink,
		Log:        log,
		now:        time.Now,
	}
}

// Run polls until ctx is cancelled. Errors from a single poll are logged
// and polling continues; a character switch stops it.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if err := p.Poll(ctx); err != nil {
			if errors.Is(err, ErrCharacterSwitched) {
				return err
			}
			p.Log.Error("poll failed", "path", p.Path, "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll checks the file once. It returns without reading when the file is
// missing, unchanged or stale.
func (p *Poller) Poll(ctx context.Context) error {
	info, err := os.Stat(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat saved variables: %w", err)
	}

	mod := info.ModTime()
	if mod.Equal(p.lastMod) {
		return nil
	}
	p.lastMod = mod

	if age := p.clock().Sub(mod); age > p.StaleAfter {
		p.Log.Info("ignoring stale saved variables", "age", age.Round(time.Second))
		return nil
	}

	s, err := ReadSavedVariables(p.Path)
	if err != nil {
		return err
	}
	fresh, err := p.Tracker.Observe(s)
	if err != nil {
		return err
	}
	if len(fresh) == 0 {
		return nil
	}
	p.Log.Info("new checks", "count", len(fresh), "char_id", s.CharID)
	if err := p.Sink.LocationChecks(ctx, fresh); err != nil {
		p.Tracker.forget(fresh)
		p.lastMod = time.Time{}
		return fmt.Errorf("sending checks: %w", err)
	}
	return nil
}

func (p *Poller) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}
