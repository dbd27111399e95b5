package effects

var fsEffects = map[string][]entry{
	"rm": {
		{effect: ModifiesFileSystem},
		{effect: NoDataInStdout},
		{effect: MayCauseDataLoss, when: hasFlag("-f", "--force")},
		{effect: Dangerous, when: hasFlag("-r", "-R", "--recursive")},
	},
	"mv": {
		{effect: ModifiesFileSystem},
		{effect: NoDataInStdout},
		{effect: MayCauseDataLoss, when: hasFlag("-f", "--force")},
	},
	"cp": {
		{effect: ModifiesFileSystem},
		{effect: NoDataInStdout},
		{effect: MayCauseDataLoss, when: hasFlag("-f", "--force")},
	},
	"mkdir": {{effect: ModifiesFileSystem}, {effect: NoDataInStdout}},
	"rmdir": {{effect: ModifiesFileSystem}, {effect: NoDataInStdout}},
	"touch": {{effect: ModifiesFileSystem}, {effect: NoDataInStdout}},
	"ln":    {{effect: ModifiesFileSystem}, {effect: NoDataInStdout}},
	"chmod": {{effect: ModifiesFileSystem}, {effect: NoDataInStdout}},
	"chown": {
		{effect: ModifiesFileSystem},
		{effect: NoDataInStdout},
		{effect: FailsInNormalCircumstances},
	},
	"dd": {
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss},
		{effect: Dangerous},
	},
	"mkfs": {
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss},
		{effect: Dangerous},
		{effect: FailsInNormalCircumstances},
	},
	"shred": {
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss},
		{effect: Dangerous},
	},
	"truncate": {
		{effect: ModifiesFileSystem},
		{effect: MayCauseDataLoss},
	},
	"sync": {{effect: NoDataInStdout}},
	"mount": {
		{effect: ModifiesFileSystem},
		{effect: FailsInNormalCircumstances},
	},
	"umount": {
		{effect: ModifiesFileSystem},
		{effect: FailsInNormalCircumstances},
	},
}
