package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nvandessel/ballfall/internal/config"
	"github.com/nvandessel/ballfall/internal/contact"
	"github.com/nvandessel/ballfall/internal/environment"
	"github.com/nvandessel/ballfall/internal/logging"
	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/output"
	"github.com/nvandessel/ballfall/internal/pathutil"
	"github.com/nvandessel/ballfall/internal/physics"
	"github.com/nvandessel/ballfall/internal/ratelimit"
	"github.com/nvandessel/ballfall/internal/simulation"
	"github.com/nvandessel/ballfall/internal/visualization"
	"github.com/spf13/cobra"
)

// progressInterval paces the info-level progress line of a run.
const progressInterval = 2 * time.Second

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one batch simulation and write its contact graph",
		Long: `Spawn bodies into the funnel, step until the run stops, then write the
timestamped report and connections.txt to the output directory.

The run stops after --max-frames frames, or once --idle-frames frames have
passed since the last spawn. An interrupt (Ctrl+C) also stops the run; the
artifacts are still written from the positions reached so far.

Examples:
  ballfall run
  ballfall run --bodies 60 --seed 7 --out runs/
  ballfall run --scene scene.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			runID := uuid.NewString()
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()).With("run_id", runID)
			events := logging.NewEventLogger(cfg.Output.Dir, cfg.Logging.Level, runID)
			defer events.Close()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := runBatch(ctx, cfg, logger, events)
			if err != nil {
				return err
			}
			bodies := result.State.Bodies
			pairs := contact.Extract(bodies, cfg.Body.Radius, cfg.Contact.ThresholdRatio)
			digest := strconv.FormatUint(contact.Digest(pairs), 16)
			logger.Info("contacts extracted", "bodies", len(bodies), "contacts", len(pairs), "digest", digest)

			w := output.NewWriter(cfg.Output.Dir, logger)
			w.AdjacencyName = cfg.Output.AdjacencyFile
			w.ReportLayout = cfg.Output.ReportLayout
			reportPath, adjacencyPath, err := writeArtifacts(w, bodies, pairs)
			if err != nil {
				return err
			}
			events.Log(map[string]any{
				"event":     "output",
				"report":    pathutil.RedactPath(reportPath),
				"adjacency": pathutil.RedactPath(adjacencyPath),
				"contacts":  len(pairs),
				"digest":    digest,
			})

			if cfg.Output.Retention.Enabled() {
				policy, err := buildRetentionPolicy(cfg.Output.Retention.MaxCount, cfg.Output.Retention.MaxAge)
				if err != nil {
					return err
				}
				removed, err := output.Prune(cfg.Output.Dir, cfg.Output.ReportLayout, policy, false)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to apply retention: %v\n", err)
				} else if len(removed) > 0 {
					logger.Debug("pruned reports", "count", len(removed))
				}
			}

			scenePath, _ := cmd.Flags().GetString("scene")
			if scenePath != "" {
				svg := visualization.RenderScene(visualization.Scene{
					Width:    cfg.World.Width,
					Height:   cfg.World.Height,
					Segments: result.State.Environment.Segments(),
					Bodies:   bodies,
					Contacts: pairs,
				})
				if err := os.WriteFile(scenePath, []byte(svg), 0644); err != nil {
					return fmt.Errorf("writing scene: %w", err)
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"run_id":    runID,
					"reason":    string(result.Reason),
					"frames":    result.State.Frame,
					"bodies":    len(bodies),
					"contacts":  len(pairs),
					"digest":    digest,
					"report":    reportPath,
					"adjacency": adjacencyPath,
				})
			}

			fmt.Fprintf(out, "Run %s stopped (%s) after %d frames\n", runID, result.Reason, result.State.Frame)
			fmt.Fprintf(out, "  bodies:    %d\n", len(bodies))
			fmt.Fprintf(out, "  contacts:  %d\n", len(pairs))
			fmt.Fprintf(out, "  report:    %s\n", reportPath)
			fmt.Fprintf(out, "  adjacency: %s\n", adjacencyPath)
			if scenePath != "" {
				fmt.Fprintf(out, "  scene:     %s\n", scenePath)
			}
			return nil
		},
	}

	cmd.Flags().Int("bodies", 0, "Number of bodies to spawn (not counting seeds)")
	cmd.Flags().Int("spawn-every", 0, "Frames between spawns")
	cmd.Flags().Int("max-frames", 0, "Stop after this many frames")
	cmd.Flags().Int("idle-frames", 0, "Stop after this many frames without a spawn")
	cmd.Flags().Uint64("seed", 0, "Random seed for spawn positions (0 = random)")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().Bool("no-seeds", false, "Do not register the seed positions as the first bodies")
	cmd.Flags().String("scene", "", "Also write an SVG snapshot of the settled scene to this file")

	return cmd
}

// applyRunFlags overrides config values with flags the user set explicitly.
func applyRunFlags(cmd *cobra.Command, cfg *config.BallfallConfig) {
	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Batch.Bodies, _ = flags.GetInt("bodies")
	}
	if flags.Changed("spawn-every") {
		cfg.Batch.SpawnEvery, _ = flags.GetInt("spawn-every")
	}
	if flags.Changed("max-frames") {
		cfg.Batch.MaxFrames, _ = flags.GetInt("max-frames")
	}
	if flags.Changed("idle-frames") {
		cfg.Batch.IdleFrames, _ = flags.GetInt("idle-frames")
	}
	if flags.Changed("seed") {
		cfg.Batch.RandSeed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("out") {
		cfg.Output.Dir, _ = flags.GetString("out")
	}
	if noSeeds, _ := flags.GetBool("no-seeds"); noSeeds {
		cfg.Sources.UseSeeds = false
	}
}

// runBatch wires the environment, engine, driver and spawn policy from cfg
// and runs the frame loop.
func runBatch(ctx context.Context, cfg *config.BallfallConfig, logger *slog.Logger, events *logging.EventLogger) (simulation.Result, error) {
	segDefaults := environment.SegmentDefaults{
		Thickness:  cfg.Segment.Thickness,
		Elasticity: cfg.Segment.Elasticity,
		Friction:   cfg.Segment.Friction,
	}
	env := environment.Build(cfg.World.Width, cfg.World.Height, cfg.Sources.SegmentsPath, segDefaults, logger)

	// Only seeds read from the source become bodies.
	var seeds []models.Seed
	if cfg.Sources.UseSeeds {
		loadedSeeds, loaded := environment.SeedsOrDefault(cfg.Sources.SeedsPath, logger)
		if loaded {
			seeds = loadedSeeds
		} else {
			logger.Debug("fallback seeds not spawned", "seeds", len(loadedSeeds))
		}
	}

	gravity := models.Vec2{X: cfg.World.GravityX, Y: cfg.World.GravityY}
	engine := physics.NewChipmunkEngine(physics.SpaceParams{
		Gravity:       gravity,
		Iterations:    cfg.Physics.Iterations,
		CollisionSlop: cfg.Physics.CollisionSlop,
	})
	driver := simulation.NewDriver(env, engine, simulation.Params{
		Body: physics.BodyParams{
			Radius:     cfg.Body.Radius,
			Mass:       cfg.Body.Mass,
			Moment:     cfg.Body.Moment,
			Elasticity: cfg.Body.Elasticity,
			Friction:   cfg.Body.Friction,
		},
		Gravity:  gravity,
		Timestep: cfg.Physics.Timestep,
	})

	policy, err := simulation.NewBandPolicy(simulation.NewRand(cfg.Batch.RandSeed), simulation.Band{
		Width:        cfg.World.Width,
		Height:       cfg.World.Height,
		Margin:       cfg.Spawn.Margin,
		HeightOffset: cfg.Spawn.HeightOffset,
	})
	if err != nil {
		return simulation.Result{}, err
	}

	runner := &simulation.Runner{
		Driver:   driver,
		Policy:   policy,
		Schedule: simulation.Schedule{Bodies: cfg.Batch.Bodies, Every: cfg.Batch.SpawnEvery},
		Stop:     simulation.StopPolicy{MaxFrames: cfg.Batch.MaxFrames, IdleFrames: cfg.Batch.IdleFrames},
		Seeds:    seeds,
		Logger:   logger,
		Events:   events,
		Progress: ratelimit.NewThrottle(progressInterval),
	}
	return runner.Run(ctx), nil
}

// writeArtifacts writes the report, then the adjacency file. A failed report
// leaves the previous adjacency file in place.
func writeArtifacts(w *output.Writer, bodies []models.Body, pairs []models.ContactPair) (reportPath, adjacencyPath string, err error) {
	reportPath, err = w.WriteReport(bodies, pairs)
	if err != nil {
		return "", "", err
	}
	adjacencyPath, err = w.WriteAdjacency(pairs)
	if err != nil {
		return reportPath, "", err
	}
	return reportPath, adjacencyPath, nil
}
