package lsp

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"nulint/internal/driver"
	"nulint/internal/lint"
	"nulint/internal/source"
)

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.lintSeq, 1)
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

// runDiagnostics lints every open document and publishes the outcome.
// A run scheduled before the latest edit is dropped, both before the
// lint and again before publishing.
func (s *Server) runDiagnostics(seq uint64) {
	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	if len(s.openDocs) == 0 {
		s.mu.Unlock()
		s.clearPublishedDiagnostics()
		return
	}
	docs := make(map[string]string, len(s.openDocs))
	docVersions := make(map[string]int, len(s.openDocs))
	for uri, text := range s.openDocs {
		docs[uri] = text
		docVersions[uri] = s.versions[uri]
	}
	s.mu.Unlock()

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}

	targets := make([]string, 0, len(docs))
	for uri := range docs {
		targets = append(targets, uri)
	}
	sort.Strings(targets)

	grouped := make(map[string][]lspDiagnostic, len(targets))
	outcomes := make(map[string]docResult, len(targets))
	for _, uri := range targets {
		path := uriToPath(uri)
		if path == "" {
			continue
		}
		fr := s.lintFn(ctx, path, []byte(docs[uri]), driver.Options{
			Config: s.config,
			Warn:   s.warn,
		})
		if fr.Err != nil {
			s.logf("lint %s: %v", path, fr.Err)
			continue
		}
		grouped[uri] = s.diagnosticsFor(&fr, path)
		outcomes[uri] = docResult{
			set:        fr.Set,
			file:       fr.File,
			violations: fr.Violations,
			version:    docVersions[uri],
		}
	}

	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	if !s.isLatestSeq(seq) {
		s.mu.Unlock()
		return
	}
	for uri, outcome := range outcomes {
		if _, open := s.openDocs[uri]; open {
			s.results[uri] = outcome
		}
	}
	prev := s.published
	s.published = make(map[string]struct{}, len(targets))
	for _, uri := range targets {
		s.published[uri] = struct{}{}
	}
	s.mu.Unlock()

	for _, uri := range targets {
		if err := s.sendPublish(uri, grouped[uri]); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
		}
	}
	for uri := range prev {
		if _, ok := docs[uri]; ok {
			continue
		}
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

// diagnosticsFor maps the document's own violations to LSP diagnostics.
// Findings in sourced files are dropped; they belong to that file's
// buffer, not this one.
func (s *Server) diagnosticsFor(fr *driver.FileResult, docPath string) []lspDiagnostic {
	diags := make([]lspDiagnostic, 0, len(fr.Violations))
	for i := range fr.Violations {
		v := &fr.Violations[i]
		if v.Path != docPath {
			continue
		}
		if len(diags) >= s.maxDiagnostics {
			break
		}
		file, _ := fr.Set.FileFor(v.Span)
		diags = append(diags, violationDiagnostic(file, v))
	}
	return diags
}

func violationDiagnostic(file *source.File, v *lint.Violation) lspDiagnostic {
	return lspDiagnostic{
		Range:    rangeForSpan(file, v.Span),
		Severity: lspSeverity(v.Severity),
		Code:     v.Rule,
		Source:   "nu-lint",
		Message:  v.Message,
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	if len(s.published) == 0 {
		s.mu.Unlock()
		return
	}
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for uri := range prev {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

// lspSeverity maps lint severities onto the protocol's 1..4 scale.
func lspSeverity(sev lint.Severity) int {
	switch sev {
	case lint.SevError:
		return 1
	case lint.SevWarn:
		return 2
	default:
		return 4
	}
}
