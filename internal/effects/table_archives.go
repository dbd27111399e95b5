package effects

var archiveEffects = map[string][]entry{
	"tar": {
		{effect: ModifiesFileSystem, when: hasFlag("-x", "--extract", "-c", "--create")},
		{effect: MayCauseDataLoss, when: hasFlag("--overwrite")},
		{effect: StreamingOutput, when: hasFlag("-t", "--list")},
	},
	"zip": {{effect: ModifiesFileSystem}},
	"unzip": {
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss, when: hasFlag("-o")},
	},
	"gzip":   {{effect: ModifiesFileSystem}},
	"gunzip": {{effect: ModifiesFileSystem}},
	"bzip2":  {{effect: ModifiesFileSystem}},
	"xz":     {{effect: ModifiesFileSystem}},
	"zstd":   {{effect: ModifiesFileSystem}},
	"7z": {
		{effect: ModifiesFileSystem, when: subcommandIs("x", "e", "a", "d", "rn")},
		{effect: StreamingOutput, when: subcommandIs("l", "t")},
	},
	"unrar": {{effect: ModifiesFileSystem, when: subcommandIs("x", "e")}},
}
