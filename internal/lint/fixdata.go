package lint

// FixInput is rule-private data carried from detection to fix building.
// The pipeline never looks inside; it hands the value back to the same
// rule's Fix method.
type FixInput any

// DetectionWithFix pairs a detection with the data its rule needs to
// build the corresponding fix later. Input may be nil when the rule
// already knows it cannot fix this instance.
type DetectionWithFix struct {
	Detection Detection
	Input     FixInput
}

// NoFix lifts plain detections into the paired shape with no fix data.
func NoFix(ds []Detection) []DetectionWithFix {
	out := make([]DetectionWithFix, len(ds))
	for i, d := range ds {
		out[i] = DetectionWithFix{Detection: d}
	}
	return out
}

// Detections drops the fix data, leaving the plain detections.
func Detections(pairs []DetectionWithFix) []Detection {
	out := make([]Detection, len(pairs))
	for i, p := range pairs {
		out[i] = p.Detection
	}
	return out
}
