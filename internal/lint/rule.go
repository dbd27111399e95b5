package lint

// Info describes a rule for registries, `rules` listings, and `explain`
// output. ID is lowercase snake case naming the condition the rule
// detects. Long, Link, and Tags may be empty.
type Info struct {
	ID    string
	Short string
	Long  string
	Link  string
	Level Severity // built-in default severity
	Tags  []string
}

// Rule is the detect-only archetype: inspect the file through the
// context, report detections. Rules hold no per-run state; the same
// value serves every file.
type Rule interface {
	Info() Info
	Detect(ctx *Context) []Detection
}

// FixableRule also builds machine-applicable fixes. DetectWithFix
// returns each detection with the rule-private data Fix needs later;
// Fix may return nil to decline an instance it cannot rewrite safely.
type FixableRule interface {
	Rule
	DetectWithFix(ctx *Context) []DetectionWithFix
	Fix(ctx *Context, input FixInput) *Fix
}
