package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nvandessel/ballfall/internal/models"
)

// ReadPositions parses "x;y" lines. Blank lines and the section rule are
// skipped. A whole report can be passed in: lines under a contacts heading
// are ignored and each positions heading starts a new list, so a report with
// several appended runs yields the positions of the last one.
func ReadPositions(r io.Reader) ([]models.Vec2, error) {
	var out []models.Vec2
	inContacts := false
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "", SectionRule:
			continue
		case PositionsHeading:
			out, inContacts = nil, false
			continue
		case ContactsHeading:
			inContacts = true
			continue
		}
		if inContacts {
			continue
		}

		xs, ys, ok := strings.Cut(line, ";")
		if !ok {
			return nil, fmt.Errorf("line %d: expected x;y, got %q", lineNo, line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad x: %w", lineNo, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad y: %w", lineNo, err)
		}
		out = append(out, models.Vec2{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	return out, nil
}
