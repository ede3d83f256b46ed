package environment

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/pathutil"
)

// ErrConfigUnreadable is returned when a source is missing or a line does not
// parse. Callers recover from it with a known default.
var ErrConfigUnreadable = errors.New("environment: config unreadable")

// DefaultSeeds is the fallback seed list used when the seed source is unusable.
func DefaultSeeds() []models.Seed {
	return []models.Seed{{X: 0, Y: 0}, {X: 1, Y: 1}}
}

// LoadSeeds reads one "x,y" integer pair per line. Blank lines are skipped.
// Any malformed line fails the whole load; there is no partial result.
// A source with fewer than two records is also unreadable.
func LoadSeeds(path string) ([]models.Seed, error) {
	var seeds []models.Seed
	err := scanRecords(path, 2, func(v []int) {
		seeds = append(seeds, models.Seed{X: v[0], Y: v[1]})
	})
	if err != nil {
		return nil, err
	}
	if len(seeds) < 2 {
		return nil, fmt.Errorf("%w: %d seed records, need at least 2", ErrConfigUnreadable, len(seeds))
	}
	return seeds, nil
}

// SeedsOrDefault loads the seed source and substitutes DefaultSeeds on any
// failure. loaded is false when the defaults were substituted.
func SeedsOrDefault(path string, logger *slog.Logger) (seeds []models.Seed, loaded bool) {
	seeds, err := LoadSeeds(path)
	if err != nil {
		logger.Info("seed source unusable, using default seeds",
			"path", pathutil.RedactPath(path), "error", err)
		return DefaultSeeds(), false
	}
	return seeds, true
}

// LoadSegments reads one "x1,y1,x2,y2" integer record per line and applies d
// to each segment. Any malformed line fails the whole load.
func LoadSegments(path string, d SegmentDefaults) ([]models.Segment, error) {
	var segs []models.Segment
	err := scanRecords(path, 4, func(v []int) {
		segs = append(segs, models.Segment{
			A:          models.Vec2{X: float64(v[0]), Y: float64(v[1])},
			B:          models.Vec2{X: float64(v[2]), Y: float64(v[3])},
			Thickness:  d.Thickness,
			Elasticity: d.Elasticity,
			Friction:   d.Friction,
		})
	})
	if err != nil {
		return nil, err
	}
	return segs, nil
}

// scanRecords parses comma-separated integer records with exactly n fields.
func scanRecords(path string, n int, emit func([]int)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != n {
			return fmt.Errorf("%w: line %d: want %d fields, got %d", ErrConfigUnreadable, lineNo, n, len(fields))
		}

		values := make([]int, n)
		for i, field := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrConfigUnreadable, lineNo, err)
			}
			values[i] = v
		}
		emit(values)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}
	return nil
}
