// Package observ holds small observability helpers: phase timers the
// driver threads through a lint run and reports behind --timings.
package observ

import (
	"fmt"
	"time"
)

// Phase records the duration and metadata of one phase of a run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of consecutive phases. It is not
// safe for concurrent use; each worker keeps its own.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary returns a human-readable block listing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, p := range report.Phases {
		out += fmt.Sprintf("  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  // " + p.Note
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-12s %7.2f ms\n", "total", report.TotalMS)
	return out
}

// PhaseReport is the serialized form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates a timer for serialization.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report flattens the phases and totals their duration in milliseconds.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Merge sums per-phase durations across reports, matching phases by
// name, for run-wide totals over parallel workers.
func Merge(reports ...Report) Report {
	var merged Report
	index := map[string]int{}
	for _, r := range reports {
		merged.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			if at, ok := index[p.Name]; ok {
				merged.Phases[at].DurationMS += p.DurationMS
				continue
			}
			index[p.Name] = len(merged.Phases)
			merged.Phases = append(merged.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
		}
	}
	return merged
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
