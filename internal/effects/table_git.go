package effects

var gitEffects = map[string][]entry{
	"git": {
		{effect: ModifiesNetworkState, when: subcommandIs("push", "pull", "fetch", "clone")},
		{effect: ModifiesFileSystem, when: subcommandIs(
			"clone", "pull", "checkout", "switch", "restore", "reset",
			"clean", "merge", "rebase", "stash", "apply", "cherry-pick")},
		{effect: MayCauseDataLoss, when: subcommandIs("reset", "clean", "checkout", "restore")},
		{effect: Dangerous, when: allOf(subcommandIs("push"), hasFlag("-f", "--force"))},
		{effect: LikelyErrors, when: subcommandIs("merge", "rebase", "cherry-pick")},
		{effect: StreamingOutput, when: subcommandIs("log", "diff", "show", "blame", "status")},
	},
}
