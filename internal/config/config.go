// Package config provides unified configuration loading for ballfall.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nvandessel/ballfall/internal/constants"
	"gopkg.in/yaml.v3"
)

// BallfallConfig contains all ballfall configuration settings.
type BallfallConfig struct {
	// World describes the environment extents and gravity.
	World WorldConfig `json:"world" yaml:"world"`

	// Physics contains the stepping parameters handed to the engine.
	Physics PhysicsConfig `json:"physics" yaml:"physics"`

	// Body contains the parameters shared by every body.
	Body BodyConfig `json:"body" yaml:"body"`

	// Segment contains defaults for static segments.
	Segment SegmentConfig `json:"segment" yaml:"segment"`

	// Spawn describes the spawn band.
	Spawn SpawnConfig `json:"spawn" yaml:"spawn"`

	// Contact configures the contact rule.
	Contact ContactConfig `json:"contact" yaml:"contact"`

	// Batch configures the non-interactive run loop.
	Batch BatchConfig `json:"batch" yaml:"batch"`

	// Sources names the optional text inputs.
	Sources SourcesConfig `json:"sources" yaml:"sources"`

	// Output configures where artifacts are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// WorldConfig describes the environment box and gravity.
type WorldConfig struct {
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	GravityX float64 `json:"gravity_x" yaml:"gravity_x"`
	GravityY float64 `json:"gravity_y" yaml:"gravity_y"`
}

// PhysicsConfig holds the engine stepping parameters.
type PhysicsConfig struct {
	// Timestep is the fixed dt passed to the engine once per frame.
	Timestep float64 `json:"timestep" yaml:"timestep"`

	// Iterations is the solver iteration count.
	Iterations int `json:"iterations" yaml:"iterations"`

	// CollisionSlop is the overlap the solver tolerates between shapes.
	CollisionSlop float64 `json:"collision_slop" yaml:"collision_slop"`
}

// BodyConfig holds the uniform body parameters.
type BodyConfig struct {
	Radius     float64 `json:"radius" yaml:"radius"`
	Mass       float64 `json:"mass" yaml:"mass"`
	Moment     float64 `json:"moment" yaml:"moment"`
	Elasticity float64 `json:"elasticity" yaml:"elasticity"`
	Friction   float64 `json:"friction" yaml:"friction"`
}

// SegmentConfig holds the defaults applied to static segments.
type SegmentConfig struct {
	Thickness  float64 `json:"thickness" yaml:"thickness"`
	Elasticity float64 `json:"elasticity" yaml:"elasticity"`
	Friction   float64 `json:"friction" yaml:"friction"`
}

// SpawnConfig describes where new bodies appear.
type SpawnConfig struct {
	// Margin keeps x inside [Margin, Width-Margin].
	Margin float64 `json:"margin" yaml:"margin"`

	// HeightOffset puts the spawn line at Height-HeightOffset.
	HeightOffset float64 `json:"height_offset" yaml:"height_offset"`
}

// ContactConfig configures the contact rule.
type ContactConfig struct {
	// ThresholdRatio scales exact tangency (2r). Must be >= 1.
	ThresholdRatio float64 `json:"threshold_ratio" yaml:"threshold_ratio"`
}

// BatchConfig configures the non-interactive run loop.
type BatchConfig struct {
	// Bodies is how many bodies are spawned, not counting seeds.
	Bodies int `json:"bodies" yaml:"bodies"`

	// SpawnEvery is the number of frames between spawn triggers.
	SpawnEvery int `json:"spawn_every" yaml:"spawn_every"`

	// MaxFrames stops the run after this many frames (0 = no limit).
	MaxFrames int `json:"max_frames" yaml:"max_frames"`

	// IdleFrames stops the run when no spawn happened for this many frames (0 = never).
	IdleFrames int `json:"idle_frames" yaml:"idle_frames"`

	// RandSeed seeds the spawn policy. 0 means seed from the clock.
	RandSeed uint64 `json:"rand_seed" yaml:"rand_seed"`
}

// SourcesConfig names the optional text inputs.
type SourcesConfig struct {
	// SeedsPath is the initial-position source (int,int per line).
	SeedsPath string `json:"seeds_path" yaml:"seeds_path"`

	// UseSeeds registers the positions read from SeedsPath as the first
	// bodies. The fallback seeds are never spawned.
	UseSeeds bool `json:"use_seeds" yaml:"use_seeds"`

	// SegmentsPath is the segment source (int,int,int,int per line).
	// Empty selects the hard-coded funnel.
	SegmentsPath string `json:"segments_path,omitempty" yaml:"segments_path,omitempty"`
}

// OutputConfig configures the output artifacts.
type OutputConfig struct {
	// Dir is where the report and adjacency files are written.
	Dir string `json:"dir" yaml:"dir"`

	// AdjacencyFile is the overwritten contact-pair file name.
	AdjacencyFile string `json:"adjacency_file" yaml:"adjacency_file"`

	// ReportLayout is the time layout used for the report file name.
	ReportLayout string `json:"report_layout" yaml:"report_layout"`

	// Retention prunes old reports after each run. Zero values keep everything.
	Retention RetentionConfig `json:"retention" yaml:"retention"`
}

// RetentionConfig configures report retention.
type RetentionConfig struct {
	// MaxCount keeps the N most recent reports (0 = no count limit).
	MaxCount int `json:"max_count" yaml:"max_count"`

	// MaxAge keeps reports newer than this duration, e.g. "30d", "2w", "720h".
	MaxAge string `json:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// Enabled reports whether any retention limit is set.
func (r RetentionConfig) Enabled() bool {
	return r.MaxCount > 0 || r.MaxAge != ""
}

// LoggingConfig configures ballfall's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables the run-event log in the output directory.
	Level string `json:"level" yaml:"level"`
}

// Default returns a BallfallConfig with the documented defaults.
func Default() *BallfallConfig {
	return &BallfallConfig{
		World: WorldConfig{
			Width:    constants.DefaultWorldWidth,
			Height:   constants.DefaultWorldHeight,
			GravityX: constants.DefaultGravityX,
			GravityY: constants.DefaultGravityY,
		},
		Physics: PhysicsConfig{
			Timestep:      constants.DefaultTimestep,
			Iterations:    constants.DefaultIterations,
			CollisionSlop: constants.DefaultCollisionSlop,
		},
		Body: BodyConfig{
			Radius:     constants.DefaultBodyRadius,
			Mass:       constants.DefaultBodyMass,
			Moment:     constants.DefaultBodyMoment,
			Elasticity: constants.DefaultBodyElasticity,
			Friction:   constants.DefaultBodyFriction,
		},
		Segment: SegmentConfig{
			Thickness:  constants.DefaultSegmentThickness,
			Elasticity: constants.DefaultSegmentElasticity,
			Friction:   constants.DefaultSegmentFriction,
		},
		Spawn: SpawnConfig{
			Margin:       constants.DefaultSpawnMargin,
			HeightOffset: constants.DefaultSpawnHeightOffset,
		},
		Contact: ContactConfig{
			ThresholdRatio: constants.DefaultThresholdRatio,
		},
		Batch: BatchConfig{
			Bodies:     constants.DefaultBatchBodies,
			SpawnEvery: constants.DefaultSpawnEvery,
			MaxFrames:  constants.DefaultMaxFrames,
			IdleFrames: constants.DefaultIdleFrames,
		},
		Sources: SourcesConfig{
			SeedsPath: constants.SeedsFileName,
			UseSeeds:  true,
		},
		Output: OutputConfig{
			Dir:           ".",
			AdjacencyFile: constants.AdjacencyFileName,
			ReportLayout:  constants.ReportTimeLayout,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration and applies environment variables.
// Order: defaults -> path (or ./ballfall.yaml when path is empty and it exists) -> environment.
// An explicit path that cannot be read is an error; the implicit file is optional.
func Load(path string) (*BallfallConfig, error) {
	config := Default()

	if path == "" {
		if _, statErr := os.Stat(constants.ConfigFileName); statErr == nil {
			path = constants.ConfigFileName
		}
	}

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys absent from the file keep their defaults.
func LoadFromFile(path string) (*BallfallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Marshal renders the configuration as YAML.
func (c *BallfallConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the configuration is valid.
func (c *BallfallConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}

	if c.Physics.Timestep <= 0 {
		return fmt.Errorf("timestep must be positive, got %g", c.Physics.Timestep)
	}

	if c.Physics.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Physics.Iterations)
	}

	if c.Physics.CollisionSlop < 0 {
		return fmt.Errorf("collision slop must be non-negative, got %g", c.Physics.CollisionSlop)
	}

	if c.Body.Radius <= 0 {
		return fmt.Errorf("body radius must be positive, got %g", c.Body.Radius)
	}

	if c.Body.Mass <= 0 || c.Body.Moment <= 0 {
		return fmt.Errorf("body mass and moment must be positive, got %g and %g", c.Body.Mass, c.Body.Moment)
	}

	if c.Contact.ThresholdRatio < 1 {
		return fmt.Errorf("threshold_ratio must be >= 1, got %g", c.Contact.ThresholdRatio)
	}

	if c.Spawn.Margin < 0 || c.World.Width-2*c.Spawn.Margin < 0 {
		return fmt.Errorf("spawn margin %g leaves no spawn band in width %g", c.Spawn.Margin, c.World.Width)
	}

	if c.Batch.Bodies < 0 || c.Batch.MaxFrames < 0 || c.Batch.IdleFrames < 0 {
		return fmt.Errorf("batch counts must be non-negative")
	}

	if c.Batch.SpawnEvery <= 0 {
		return fmt.Errorf("spawn_every must be positive, got %d", c.Batch.SpawnEvery)
	}

	if c.Batch.MaxFrames == 0 && c.Batch.IdleFrames == 0 {
		return fmt.Errorf("batch run needs max_frames or idle_frames to stop")
	}

	if c.Output.AdjacencyFile == "" {
		return fmt.Errorf("adjacency_file must not be empty")
	}

	if c.Output.ReportLayout == "" {
		return fmt.Errorf("report_layout must not be empty")
	}

	if c.Output.Retention.MaxCount < 0 {
		return fmt.Errorf("retention max_count must be non-negative, got %d", c.Output.Retention.MaxCount)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *BallfallConfig) {
	if v := os.Getenv("BALLFALL_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("BALLFALL_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("BALLFALL_SEEDS_PATH"); v != "" {
		config.Sources.SeedsPath = v
	}

	if v := os.Getenv("BALLFALL_SEGMENTS_PATH"); v != "" {
		config.Sources.SegmentsPath = v
	}

	if v := os.Getenv("BALLFALL_USE_SEEDS"); v != "" {
		config.Sources.UseSeeds = v == "true" || v == "1"
	}

	if v := os.Getenv("BALLFALL_BODIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Batch.Bodies = n
		}
	}

	if v := os.Getenv("BALLFALL_RAND_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Batch.RandSeed = n
		}
	}

	if v := os.Getenv("BALLFALL_RADIUS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Body.Radius = f
		}
	}

	if v := os.Getenv("BALLFALL_THRESHOLD_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Contact.ThresholdRatio = f
		}
	}
}
