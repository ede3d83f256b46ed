package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nvandessel/ballfall/internal/constants"
	"github.com/nvandessel/ballfall/internal/pathutil"
)

// ReportInfo holds metadata for retention decisions.
type ReportInfo struct {
	Path      string
	Size      int64
	CreatedAt time.Time
}

// RetentionPolicy decides which reports to keep.
type RetentionPolicy interface {
	Apply(reports []ReportInfo) (keep []ReportInfo)
}

// CountPolicy keeps the N most recent reports.
type CountPolicy struct {
	MaxCount int
}

// Apply keeps the first MaxCount reports (assumed sorted newest-first).
func (p *CountPolicy) Apply(reports []ReportInfo) []ReportInfo {
	if len(reports) <= p.MaxCount {
		return reports
	}
	return reports[:p.MaxCount]
}

// AgePolicy keeps reports newer than MaxAge.
type AgePolicy struct {
	MaxAge time.Duration
	Now    func() time.Time
}

// Apply keeps reports whose CreatedAt is within MaxAge of now.
func (p *AgePolicy) Apply(reports []ReportInfo) []ReportInfo {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	cutoff := now().Add(-p.MaxAge)
	var keep []ReportInfo
	for _, r := range reports {
		if r.CreatedAt.After(cutoff) {
			keep = append(keep, r)
		}
	}
	return keep
}

// CompositePolicy keeps a report if ANY sub-policy wants it (union).
type CompositePolicy struct {
	Policies []RetentionPolicy
}

// Apply returns the union of reports kept by any sub-policy.
func (p *CompositePolicy) Apply(reports []ReportInfo) []ReportInfo {
	kept := make(map[string]bool)
	for _, policy := range p.Policies {
		for _, r := range policy.Apply(reports) {
			kept[r.Path] = true
		}
	}

	var result []ReportInfo
	for _, r := range reports {
		if kept[r.Path] {
			result = append(result, r)
		}
	}
	return result
}

// ListReports scans dir for files whose name parses with layout plus the
// report extension and returns them newest-first. The adjacency file and
// anything else in dir is ignored.
func ListReports(dir, layout string) ([]ReportInfo, error) {
	if layout == "" {
		layout = constants.ReportTimeLayout
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report directory: %w", err)
	}

	var reports []ReportInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		created, ok := parseReportName(e.Name(), layout)
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Path:      filepath.Join(dir, e.Name()),
			Size:      info.Size(),
			CreatedAt: created,
		})
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return filepath.Base(reports[i].Path) > filepath.Base(reports[j].Path)
	})
	return reports, nil
}

func parseReportName(name, layout string) (time.Time, bool) {
	stem, ok := strings.CutSuffix(name, constants.ReportExt)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layout, stem, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Prune removes reports in dir not kept by policy and returns the removed
// paths. With dryRun it only reports what would be removed.
func Prune(dir, layout string, policy RetentionPolicy, dryRun bool) (removed []string, err error) {
	reports, err := ListReports(dir, layout)
	if err != nil {
		return nil, err
	}

	keep := policy.Apply(reports)
	keepSet := make(map[string]bool, len(keep))
	for _, r := range keep {
		keepSet[r.Path] = true
	}

	for _, r := range reports {
		if keepSet[r.Path] {
			continue
		}
		if err := pathutil.EnsureWithin(r.Path, dir); err != nil {
			return removed, err
		}
		if !dryRun {
			if err := os.Remove(r.Path); err != nil {
				return removed, fmt.Errorf("removing %s: %w", filepath.Base(r.Path), err)
			}
		}
		removed = append(removed, r.Path)
	}
	return removed, nil
}

// ageUnits are the suffixes a report age may use.
var ageUnits = map[byte]time.Duration{
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseAge parses a report age: a positive whole number of hours, days or
// weeks, e.g. "720h", "30d", "2w".
func ParseAge(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid age %q: want <n>h, <n>d or <n>w", s)
	}
	unit, ok := ageUnits[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("invalid age %q: unit must be h, d or w", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid age %q: want a positive whole number", s)
	}
	return time.Duration(n) * unit, nil
}
