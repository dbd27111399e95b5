package effects

// mutatingPackageVerbs are the subcommands shared by most package
// managers that install to or remove from the system.
var mutatingPackageVerbs = []string{
	"install", "remove", "uninstall", "purge", "upgrade", "update",
	"add", "dist-upgrade", "autoremove",
}

var packageEffects = map[string][]entry{
	"apt":     systemPackageManager(),
	"apt-get": systemPackageManager(),
	"dnf":     systemPackageManager(),
	"yum":     systemPackageManager(),
	"pacman": {
		{effect: ModifiesFileSystem, when: hasFlag("-S", "-R", "-U")},
		{effect: ModifiesNetworkState, when: hasFlag("-S", "-y")},
		{effect: FailsInNormalCircumstances, when: hasFlag("-S", "-R", "-U")},
		{effect: MayCauseDataLoss, when: hasFlag("-R")},
	},
	"brew":  userPackageManager(),
	"npm":   userPackageManager(),
	"pnpm":  userPackageManager(),
	"yarn":  userPackageManager(),
	"pip":   userPackageManager(),
	"pip3":  userPackageManager(),
	"cargo": userPackageManager(),
	"gem":   userPackageManager(),
}

func systemPackageManager() []entry {
	return []entry{
		{effect: ModifiesFileSystem, when: subcommandIs(mutatingPackageVerbs...)},
		{effect: ModifiesNetworkState, when: subcommandIs(mutatingPackageVerbs...)},
		{effect: FailsInNormalCircumstances, when: subcommandIs(mutatingPackageVerbs...)},
		{effect: MayCauseDataLoss, when: subcommandIs("remove", "purge", "autoremove")},
	}
}

func userPackageManager() []entry {
	return []entry{
		{effect: ModifiesFileSystem, when: subcommandIs(mutatingPackageVerbs...)},
		{effect: ModifiesNetworkState, when: subcommandIs(mutatingPackageVerbs...)},
	}
}
