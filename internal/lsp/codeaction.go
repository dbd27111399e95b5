package lsp

import (
	"encoding/json"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	actions := []codeAction{}
	if uri != "" {
		s.mu.Lock()
		outcome, ok := s.results[uri]
		s.mu.Unlock()
		if ok {
			actions = quickfixes(uri, outcome, params.Range)
		}
	}
	return s.sendResponse(msg.ID, actions)
}

// quickfixes builds one code action per fixable violation whose span
// touches the requested range. Fixes that would edit a sourced file
// are skipped; a workspace edit may only touch the open buffer.
func quickfixes(uri string, outcome docResult, reqRange lspRange) []codeAction {
	actions := []codeAction{}
	for i := range outcome.violations {
		v := &outcome.violations[i]
		if v.Fix == nil {
			continue
		}
		file, ok := outcome.set.FileFor(v.Span)
		if !ok || file != outcome.file {
			continue
		}
		if !rangesTouch(rangeForSpan(file, v.Span), reqRange) {
			continue
		}
		edits := make([]textEdit, 0, len(v.Fix.Replacements))
		for _, rep := range v.Fix.Replacements {
			repFile, ok := outcome.set.FileFor(rep.Span)
			if !ok || repFile != outcome.file {
				edits = nil
				break
			}
			edits = append(edits, textEdit{
				Range:   rangeForSpan(repFile, rep.Span),
				NewText: rep.NewText,
			})
		}
		if len(edits) == 0 {
			continue
		}
		actions = append(actions, codeAction{
			Title:       v.Fix.Description,
			Kind:        "quickfix",
			Diagnostics: []lspDiagnostic{violationDiagnostic(file, v)},
			Edit: &workspaceEdit{
				Changes: map[string][]textEdit{uri: edits},
			},
		})
	}
	return actions
}

func positionLE(a, b position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character <= b.Character
}

// rangesTouch reports whether two ranges overlap or abut. A collapsed
// cursor range on the edge of a violation still offers its fix.
func rangesTouch(a, b lspRange) bool {
	return positionLE(a.Start, b.End) && positionLE(b.Start, a.End)
}
