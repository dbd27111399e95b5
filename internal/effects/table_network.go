package effects

var networkEffects = map[string][]entry{
	"curl": {
		{effect: ModifiesNetworkState},
		{effect: StreamingOutput},
		{effect: LikelyErrors},
	},
	"wget": {
		{effect: ModifiesNetworkState},
		{effect: ModifiesFileSystem},
		{effect: LikelyErrors},
	},
	"ssh": {
		{effect: ModifiesNetworkState},
		{effect: LikelyErrors},
	},
	"scp": {
		{effect: ModifiesNetworkState},
		{effect: ModifiesFileSystem},
		{effect: LikelyErrors},
	},
	"sftp": {
		{effect: ModifiesNetworkState},
		{effect: ModifiesFileSystem},
	},
	"rsync": {
		{effect: ModifiesNetworkState},
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss, when: hasFlag("--delete", "--delete-before", "--delete-after")},
	},
	"ping": {
		{effect: SlowStreamingOutput},
		{effect: LikelyErrors},
	},
	"nc": {
		{effect: ModifiesNetworkState},
		{effect: SlowStreamingOutput},
	},
	"dig":      {{effect: StreamingOutput}},
	"nslookup": {{effect: StreamingOutput}},
	"iptables": {
		{effect: ModifiesNetworkState},
		{effect: Dangerous},
		{effect: FailsInNormalCircumstances},
	},
	"ifconfig": {
		{effect: ModifiesNetworkState},
		{effect: FailsInNormalCircumstances},
	},
}
