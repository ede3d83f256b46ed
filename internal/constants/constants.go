// Package constants provides named defaults for every tuning value used by ballfall.
// This keeps physical and output literals out of the core logic so they can be
// overridden through configuration.
package constants

// World geometry
const (
	// DefaultWorldWidth is the horizontal extent of the environment.
	DefaultWorldWidth = 800.0

	// DefaultWorldHeight is the vertical extent of the environment.
	// The hard-coded funnel is expressed relative to this value.
	DefaultWorldHeight = 600.0
)

// Space (engine) parameters
const (
	// DefaultGravityX is the horizontal gravity component.
	DefaultGravityX = 0.0

	// DefaultGravityY is the vertical gravity component. Negative pulls down
	// because simulation-space y grows upward.
	DefaultGravityY = -500.0

	// DefaultIterations is the solver iteration count per step.
	DefaultIterations = 120

	// DefaultCollisionSlop is the allowed overlap between shapes.
	DefaultCollisionSlop = 0.01

	// DefaultTimestep is the fixed step passed to the engine once per frame.
	DefaultTimestep = 1.0 / 60.0
)

// Body parameters. Every body in a run shares them.
const (
	// DefaultBodyRadius is the uniform body radius.
	DefaultBodyRadius = 20.0

	// DefaultBodyMass is the mass of each body.
	DefaultBodyMass = 1.0

	// DefaultBodyMoment is the moment of inertia of each body.
	DefaultBodyMoment = 100.0

	// DefaultBodyElasticity is the restitution of each body shape.
	DefaultBodyElasticity = 0.8

	// DefaultBodyFriction is the friction coefficient of each body shape.
	DefaultBodyFriction = 0.5
)

// Static segment parameters
const (
	// DefaultSegmentThickness is the radius of each static segment.
	DefaultSegmentThickness = 5.0

	// DefaultSegmentElasticity applies to segments that do not set their own.
	DefaultSegmentElasticity = 0.0

	// DefaultSegmentFriction applies to segments that do not set their own.
	DefaultSegmentFriction = 0.0
)

// Spawn band
const (
	// DefaultSpawnMargin keeps spawned x-coordinates away from the side walls.
	DefaultSpawnMargin = 50.0

	// DefaultSpawnHeightOffset is the distance of the spawn line below the top.
	DefaultSpawnHeightOffset = 50.0
)

// Contact rule
const (
	// DefaultThresholdRatio widens exact tangency (2r) to absorb solver settling slack.
	DefaultThresholdRatio = 1.02
)

// Batch run policy
const (
	// DefaultBatchBodies is how many bodies a batch run spawns.
	DefaultBatchBodies = 40

	// DefaultSpawnEvery is the number of frames between spawns.
	DefaultSpawnEvery = 10

	// DefaultMaxFrames stops a batch run after this many frames.
	DefaultMaxFrames = 3600

	// DefaultIdleFrames stops a batch run this many frames after the last spawn.
	DefaultIdleFrames = 240
)

// Output artifacts
const (
	// AdjacencyFileName is the fixed name of the overwritten contact-pair file.
	AdjacencyFileName = "connections.txt"

	// ReportTimeLayout formats the timestamped report name (YYYYMMDD-HHMMSS).
	ReportTimeLayout = "20060102-150405"

	// ReportExt is appended to the formatted timestamp.
	ReportExt = ".txt"

	// SeedsFileName is the default initial-position source.
	SeedsFileName = "config.txt"

	// EventsFileName is the JSONL run-event log written at debug level.
	EventsFileName = "events.jsonl"

	// ConfigFileName is the YAML configuration looked up in the working directory.
	ConfigFileName = "ballfall.yaml"
)

// Report retention
const (
	// DefaultKeepReports is how many timestamped reports prune keeps by default.
	DefaultKeepReports = 10
)
