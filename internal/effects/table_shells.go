package effects

// Nested shell invocations run code the linter cannot see; inline
// command strings are the worst case.
var shellEffects = map[string][]entry{
	"sh":   {{effect: Dangerous, when: hasFlag("-c")}},
	"bash": {{effect: Dangerous, when: hasFlag("-c")}},
	"zsh":  {{effect: Dangerous, when: hasFlag("-c")}},
	"dash": {{effect: Dangerous, when: hasFlag("-c")}},
	"ksh":  {{effect: Dangerous, when: hasFlag("-c")}},
	"fish": {{effect: Dangerous, when: hasFlag("-c", "--command")}},
	"nu":   {{effect: Dangerous, when: hasFlag("-c", "--commands", "-e", "--execute")}},
	"pwsh": {
		{effect: Dangerous, when: hasFlag("-c", "-Command", "-CommandWithArgs")},
	},
	"powershell": {
		{effect: Dangerous, when: hasFlag("-c", "-Command")},
	},
}
