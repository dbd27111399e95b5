package effects

var textEffects = map[string][]entry{
	"grep": {
		{effect: StreamingOutput},
		{effect: LikelyErrors}, // exits nonzero whenever nothing matches
	},
	"egrep": {
		{effect: StreamingOutput},
		{effect: LikelyErrors},
	},
	"fgrep": {
		{effect: StreamingOutput},
		{effect: LikelyErrors},
	},
	"rg": {
		{effect: StreamingOutput},
		{effect: LikelyErrors},
	},
	"sed": {
		{effect: StreamingOutput},
		{effect: ModifiesFileSystem, when: hasFlag("-i", "--in-place")},
		{effect: MayCauseDataLoss, when: hasFlag("-i", "--in-place")},
	},
	"awk":  {{effect: StreamingOutput}},
	"gawk": {{effect: StreamingOutput}},
	"cat":  {{effect: StreamingOutput}},
	"head": {{effect: StreamingOutput}},
	"tail": {
		{effect: StreamingOutput},
		{effect: SlowStreamingOutput, when: hasFlag("-f", "-F", "--follow")},
	},
	"sort": {{effect: StreamingOutput}},
	"uniq": {{effect: StreamingOutput}},
	"cut":  {{effect: StreamingOutput}},
	"tr":   {{effect: StreamingOutput}},
	"wc":   {{effect: StreamingOutput}},
	"jq": {
		{effect: StreamingOutput},
		{effect: LikelyErrors},
	},
	"find": {
		{effect: StreamingOutput},
		{effect: ModifiesFileSystem, when: hasFlag("-delete")},
		{effect: MayCauseDataLoss, when: hasFlag("-delete")},
		{effect: Dangerous, when: hasFlag("-exec", "-execdir")},
	},
	"diff": {
		{effect: StreamingOutput},
		{effect: LikelyErrors}, // exits 1 whenever the inputs differ
	},
	"cmp": {{effect: LikelyErrors}},
	"tee": {
		{effect: StreamingOutput},
		{effect: ModifiesFileSystem},
	},
}
