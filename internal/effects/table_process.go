package effects

var processEffects = map[string][]entry{
	"kill": {
		{effect: NoDataInStdout},
		{effect: Dangerous, when: hasFlag("-9", "-KILL", "--kill")},
	},
	"pkill": {
		{effect: NoDataInStdout},
		{effect: Dangerous},
	},
	"killall": {
		{effect: NoDataInStdout},
		{effect: Dangerous},
	},
	"systemctl": {
		{effect: FailsInNormalCircumstances, when: subcommandIs(
			"start", "stop", "restart", "reload", "enable", "disable", "mask", "unmask")},
		{effect: NoDataInStdout, when: subcommandIs(
			"start", "stop", "restart", "reload", "enable", "disable", "mask", "unmask")},
		{effect: Dangerous, when: subcommandIs("stop", "disable", "mask")},
		{effect: StreamingOutput, when: subcommandIs("status", "list-units", "list-timers", "cat")},
	},
	"service": {
		{effect: FailsInNormalCircumstances},
		{effect: NoDataInStdout},
	},
	"reboot":   powerCommand(),
	"shutdown": powerCommand(),
	"poweroff": powerCommand(),
	"halt":     powerCommand(),
	"sudo": {
		{effect: Dangerous},
		{effect: FailsInNormalCircumstances}, // interactive password prompt
	},
	"doas": {
		{effect: Dangerous},
		{effect: FailsInNormalCircumstances},
	},
	"ps":  {{effect: StreamingOutput}},
	"top": {{effect: SlowStreamingOutput}},
	"strace": {
		{effect: SlowStreamingOutput},
		{effect: FailsInNormalCircumstances},
	},
}

func powerCommand() []entry {
	return []entry{
		{effect: Dangerous},
		{effect: NoDataInStdout},
		{effect: FailsInNormalCircumstances},
	}
}
