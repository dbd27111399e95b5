package driver

import (
	"fmt"
	"strings"

	"nulint/internal/observ"
)

// TimingsPayload is the shape behind --timings: merged phase totals
// plus the wall-clock elapsed time, optionally broken out per file.
// Phase milliseconds sum worker time, so they exceed the wall time on
// parallel runs.
type TimingsPayload struct {
	Files   int                  `json:"files"`
	WallMS  float64              `json:"wall_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
	PerFile []FileTiming         `json:"per_file,omitempty"`
}

// FileTiming is one file's phase breakdown.
type FileTiming struct {
	Path    string               `json:"path"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// Timings merges the per-file phase reports into run-wide totals.
func (r *Result) Timings() observ.Report {
	reports := make([]observ.Report, 0, len(r.Files))
	for i := range r.Files {
		reports = append(reports, r.Files[i].Timing)
	}
	return observ.Merge(reports...)
}

// TimingsPayload builds the --timings report for the run.
func (r *Result) TimingsPayload(perFile bool) TimingsPayload {
	merged := r.Timings()
	payload := TimingsPayload{
		Files:  len(r.Files),
		WallMS: float64(r.Elapsed.Microseconds()) / 1000,
		Phases: merged.Phases,
	}
	if perFile {
		for i := range r.Files {
			fr := &r.Files[i]
			payload.PerFile = append(payload.PerFile, FileTiming{
				Path:    fr.Path,
				TotalMS: fr.Timing.TotalMS,
				Phases:  fr.Timing.Phases,
			})
		}
	}
	return payload
}

// FormatTimings renders the payload as the text block printed after a
// --timings run.
func FormatTimings(p TimingsPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "timings: %d files in %.2f ms\n", p.Files, p.WallMS)
	for _, ph := range p.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms\n", ph.Name, ph.DurationMS)
	}
	for _, ft := range p.PerFile {
		fmt.Fprintf(&b, "  %-40s %7.2f ms\n", ft.Path, ft.TotalMS)
	}
	return b.String()
}
