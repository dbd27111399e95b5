package fuzztests

import (
	"testing"
)

const maxSeedBytes = 64 << 10

// languageSeeds spans the script shapes the parser knows: pipelines,
// declarations, control flow, closures, data literals, cell paths,
// interpolation, suppression comments, and externals. Each entry is a
// standalone script.
var languageSeeds = []string{
	"",
	"ls\n",
	"ls | where size > 10kb | sort-by modified | first 5\n",
	"def greet [name: string, --loud (-l), ...rest: int] {\n  print $\"hi ($name)\"\n}\n",
	"export def main [] { null }\n",
	"let x = 42\nmut total = 0\nconst limit = 100\n",
	"$total += 1\n$total *= 2\n",
	"if $x > 0 { \"pos\" } else if $x < 0 { \"neg\" } else { \"zero\" }\n",
	"[1 2 3] | each {|n| $n * 2 }\n",
	"$rows | where {|row| ($row.size > 0) and ($row.name != \"tmp\") }\n",
	"for item in [a b c] { print $item }\n",
	"while $n < 10 { $n += 1 }\n",
	"loop { break }\n",
	"$\"value is ($x) and double is (2 * $x)\"\n",
	"source ./helpers.nu\nuse std/log\nuse mod.nu [one two]\n",
	"{name: \"n\", size: 3, nested: {a: 1}}\n",
	"[[a b]; [1 2] [3 4]]\n",
	"[1, 2, 3]\n[\n  4\n  5\n]\n",
	"$env.PATH\n$record.items.0?.name\n$table.rows.3.cell?\n",
	"1..10\n0..<$n\n5..2\n1..3..20\n",
	"# nu-lint-ignore: not_is_empty_to_is_not_empty\nnot ($x | is-empty)\n",
	"not ($list | is-empty)\n",
	"^grep -r \"pat\" .\nrun-external ls -la\n",
	"print ...$args\nlet n = (ls | length)\n",
	"try { risky } catch {|e| print $e.msg }\n",
	"match $v {\n  1 => \"one\"\n  _ => \"other\"\n}\n",
	"alias ll = ls -la\nll | get name\n",
	"do { let inner = 1; $inner } | describe\n",
	"open data.json | get items | to yaml\n",
	"'single' + \"double\" + `backtick`\n",
	"# a comment line\nls # trailing comment\n",
	"0x1f + 0b101 + 0o17 + 1_000_000\n",
	"ls out> files.txt err> errs.txt\ncat file e>| lines\n",
	"echo $nu.home-path $nu.default-config-dir\n",
	"def \"sub command\" [] { null }\nsub command\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
