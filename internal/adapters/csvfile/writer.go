package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sleigh-route-service/internal/domain"
)

var routeHeader = []string{"stop", "article", "pieces"}

// WriteRoute writes the route rows. Reload rows carry article and pieces,
// delivery rows leave both cells empty.
func WriteRoute(w io.Writer, entries []domain.RouteEntry) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(routeHeader); err != nil {
		return fmt.Errorf("write route header: %w", err)
	}

	row := make([]string, 3)
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("write route row %d: %w", i+1, err)
		}
		row[0] = strconv.Itoa(e.Stop)
		row[1], row[2] = "", ""
		if e.IsReload() {
			row[1] = strconv.Itoa(*e.Article)
			row[2] = strconv.Itoa(*e.Pieces)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write route row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush route: %w", err)
	}
	return nil
}

// SaveRoute writes the route file, creating parent directories as needed.
func SaveRoute(path string, entries []domain.RouteEntry) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save route: create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save route: close: %w", cerr)
		}
	}()

	return WriteRoute(f, entries)
}

// DefaultRoutePath names a route file after the time it was planned.
func DefaultRoutePath(dir string, at time.Time) string {
	return filepath.Join(dir, "route_"+at.Format("20060102_150405")+".csv")
}
