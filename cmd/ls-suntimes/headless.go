package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/litescript/ls-suntimes/internal/backend"
	"github.com/litescript/ls-suntimes/internal/config"
	"github.com/litescript/ls-suntimes/internal/logging"
	"github.com/litescript/ls-suntimes/internal/report"
	"github.com/litescript/ls-suntimes/internal/state"
	"github.com/litescript/ls-suntimes/internal/sun"
)

// now is replaced in tests.
var now = time.Now

// runHeadless handles all output modes without starting the TUI.
func runHeadless(ctx context.Context, opts options, w io.Writer, logger *logging.Logger) error {
	cfg := opts.cfg
	zone, err := cfg.Location()
	if err != nil {
		return err
	}
	b, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return err
	}
	loc := report.Location{Name: cfg.Name, Latitude: cfg.Latitude, Longitude: cfg.Longitude}

	switch {
	case opts.watch > 0:
		return watchSun(ctx, cfg, b, opts.watch, w, logger)
	case opts.elevation || opts.at != "":
		return writePosition(opts, loc, zone, w)
	}

	local, err := config.ParseDate(opts.date, now(), zone)
	if err != nil {
		return err
	}
	day := sun.LocalDay(local)
	logger.Debug("computing %s for %s on %s", b.Name, loc, day.Format(time.DateOnly))

	if opts.days > 0 {
		return writeDays(ctx, opts, b, loc, day, zone, w)
	}

	export := report.NewExport(loc, b.Name, day, b.Times(loc.Latitude, loc.Longitude, day), zone)

	if opts.compare != "" {
		other, _ := backend.Lookup(opts.compare)
		otherExport := report.NewExport(loc, other.Name, day, other.Times(loc.Latitude, loc.Longitude, day), zone)
		if opts.jsonOut {
			return report.WriteJSONList(w, []*report.Export{export, otherExport})
		}
		report.WriteComparison(w, export, otherExport)
		return nil
	}

	switch {
	case opts.jsonOut:
		return export.WriteJSON(w)
	case !opts.plain && isTerminal(w):
		report.WriteStyledTable(w, export)
	default:
		report.WriteTable(w, export)
	}
	return nil
}

func writeDays(ctx context.Context, opts options, b backend.Backend, loc report.Location, start time.Time, zone *time.Location, w io.Writer) error {
	days := sun.Days(start, opts.days)
	queries := make([]sun.Query, len(days))
	for i, d := range days {
		queries[i] = sun.Query{Latitude: loc.Latitude, Longitude: loc.Longitude, Date: d}
	}
	results, err := sun.Batch(ctx, b.Times, queries, 0)
	if err != nil {
		return fmt.Errorf("compute days: %w", err)
	}

	if opts.jsonOut {
		exports := make([]*report.Export, len(results))
		for i, st := range results {
			exports[i] = report.NewExport(loc, b.Name, days[i], st, zone)
		}
		return report.WriteJSONList(w, exports)
	}

	rows := make([]report.DayRow, len(results))
	for i, st := range results {
		rows[i] = report.DayRow{Date: days[i], Times: st}
	}
	report.WriteDays(w, loc, b.Name, rows, zone)
	return nil
}

// position is the JSON form of -elevation output.
type position struct {
	Time      time.Time `json:"time"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
	Phase     sun.Phase `json:"phase"`
}

func writePosition(opts options, loc report.Location, zone *time.Location, w io.Writer) error {
	at := now()
	if opts.at != "" {
		var err error
		if at, err = time.Parse(time.RFC3339, opts.at); err != nil {
			return fmt.Errorf("invalid -at %q: use RFC 3339, e.g. 2022-06-21T12:00:00Z", opts.at)
		}
	}
	h := sun.Position(loc.Latitude, loc.Longitude, at)
	p := position{
		Time:      at.In(zone),
		Elevation: h.Elevation.Deg(),
		Azimuth:   h.Azimuth.Deg(),
		Phase:     sun.PhaseOf(h.Elevation.Deg()),
	}

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	fmt.Fprintf(w, "Sun at %s for %s\n", p.Time.Format("2006-01-02 15:04:05 MST"), loc)
	fmt.Fprintf(w, "Elevation: %7.3f°\n", p.Elevation)
	fmt.Fprintf(w, "Azimuth:   %7.3f°\n", p.Azimuth)
	fmt.Fprintf(w, "Phase:     %s\n", p.Phase)
	return nil
}

// watchSun prints the position at every interval and announces phase
// changes until ctx is canceled.
func watchSun(ctx context.Context, cfg *config.Config, b backend.Backend, interval time.Duration, w io.Writer, logger *logging.Logger) error {
	tracker := state.NewTracker(state.Config{
		Latitude:      cfg.Latitude,
		Longitude:     cfg.Longitude,
		Times:         b.Times,
		MaxHistoryLen: cfg.HistoryLength,
		MaxEvents:     cfg.MaxEvents,
		Logger:        logger.Named("tracker"),
	})
	zone, _ := cfg.Location()
	isTTY := isTerminal(w)

	outputOnce := func() {
		events := tracker.Update(now())
		snap := tracker.Snapshot()
		for _, e := range events {
			fmt.Fprintf(w, "%s %s\n", e.Timestamp.In(zone).Format("15:04:05"), e.Type)
			if isTTY && w == os.Stdout {
				fmt.Fprint(w, "\a")
			}
		}
		fmt.Fprintf(w, "%s elevation %7.3f° azimuth %7.3f° %s\n",
			snap.Updated.In(zone).Format("15:04:05"), snap.Position.Elevation, snap.Position.Azimuth, snap.Phase)
	}

	outputOnce()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case <-ticker.C:
			outputOnce()
		}
	}
}
