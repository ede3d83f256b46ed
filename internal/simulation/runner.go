package simulation

import (
	"context"
	"log/slog"

	"github.com/nvandessel/ballfall/internal/logging"
	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/ratelimit"
)

// StopReason records why a batch run ended.
type StopReason string

const (
	StopMaxFrames StopReason = "max_frames"
	StopIdle      StopReason = "idle"
	StopCanceled  StopReason = "canceled"
)

// Schedule triggers a spawn every Every frames until Bodies have been spawned.
type Schedule struct {
	Bodies int
	Every  int
}

// due reports whether a spawn is triggered at frame given spawned bodies so far.
func (s Schedule) due(frame, spawned int) bool {
	return spawned < s.Bodies && s.Every > 0 && frame%s.Every == 0
}

// StopPolicy ends a batch run after MaxFrames frames, or once IdleFrames
// frames have passed without a spawn. Zero disables a condition.
type StopPolicy struct {
	MaxFrames  int
	IdleFrames int
}

// check returns the reason to stop, or "" to keep going.
func (p StopPolicy) check(frame, lastSpawn int) StopReason {
	if p.MaxFrames > 0 && frame >= p.MaxFrames {
		return StopMaxFrames
	}
	if p.IdleFrames > 0 && frame-lastSpawn >= p.IdleFrames {
		return StopIdle
	}
	return ""
}

// Result is the outcome of a batch run.
type Result struct {
	State   State
	Reason  StopReason
	Spawned int
}

// Runner is the non-interactive frame loop.
type Runner struct {
	Driver   *Driver
	Policy   SpawnPolicy
	Schedule Schedule
	Stop     StopPolicy

	// Seeds are registered as the first bodies before the loop starts.
	Seeds []models.Seed

	Logger *slog.Logger
	Events *logging.EventLogger

	// Progress, when set, paces an info-level progress line.
	Progress *ratelimit.Throttle
}

// Run executes frames until the stop policy fires or ctx is done. The returned
// state reflects whatever the bodies reached at that point.
func (r *Runner) Run(ctx context.Context) Result {
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	for _, s := range r.Seeds {
		b := r.Driver.Spawn(s.Vec())
		logger.Debug("seeded body", "id", b.ID, "x", b.Position.X, "y", b.Position.Y)
		r.Events.Log(map[string]any{"event": "seed", "body_id": b.ID, "x": b.Position.X, "y": b.Position.Y})
	}

	spawned := 0
	lastSpawn := r.Driver.Frame()
	var reason StopReason
	for {
		if ctx.Err() != nil {
			reason = StopCanceled
			break
		}

		frame := r.Driver.Frame()
		if r.Schedule.due(frame, spawned) {
			b := r.Driver.Spawn(r.Policy.Next())
			spawned++
			lastSpawn = frame
			logger.Debug("spawned body", "id", b.ID, "frame", frame, "x", b.Position.X)
			r.Events.Log(map[string]any{"event": "spawn", "body_id": b.ID, "frame": frame, "x": b.Position.X, "y": b.Position.Y})
		}

		r.Driver.Advance()
		logger.Log(ctx, logging.LevelTrace, "frame", "frame", r.Driver.Frame(), "bodies", r.Driver.Len())
		if r.Progress != nil {
			if ok, skipped := r.Progress.Ready("progress"); ok {
				logger.Info("progress", "frame", r.Driver.Frame(), "bodies", r.Driver.Len(),
					"max_speed", r.Driver.MaxSpeed(), "frames_since_last", skipped+1)
			}
		}

		if reason = r.Stop.check(r.Driver.Frame(), lastSpawn); reason != "" {
			break
		}
	}

	state := r.Driver.State()
	logger.Info("run stopped", "reason", string(reason), "frames", state.Frame, "bodies", len(state.Bodies))
	r.Events.Log(map[string]any{
		"event":     "stop",
		"reason":    string(reason),
		"frame":     state.Frame,
		"bodies":    len(state.Bodies),
		"max_speed": r.Driver.MaxSpeed(),
	})

	return Result{State: state, Reason: reason, Spawned: spawned}
}
