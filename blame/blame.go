// Package blame fetches line-level authorship for a hunk's pre-image range
// and rewrites it through the fixup-alias map so every commit identifier it
// reports is canonical.
package blame

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwoodley/git-fixup/git"
	"github.com/bwoodley/git-fixup/topic"
)

// Line is the authorship of one pre-image line: the (canonical) commit that
// last touched it, and its text.
type Line struct {
	SHA  string
	Text string
}

// Blame maps a pre-image line number to its Line, covering exactly the
// range [start, start+count) of one hunk.
type Blame map[int]Line

var blameHeaderRE = regexp.MustCompile(
	`^([0-9a-f]{40}) (\d+) (\d+)(?: \d+)?$`,
)

// Fetch obtains porcelain blame of rev for file, restricted to the
// pre-image line range [start, start+count), and rewrites every reported
// sha through aliases so it names a canonical topic target.
//
// A hunk whose count is zero (a pure insertion against an empty range)
// yields an empty Blame without invoking the version-control tool.
func Fetch(
	ctx context.Context, exec git.Executor, rev, file string,
	start, count int, aliases topic.AliasMap,
) (Blame, error) {
	if count == 0 {
		return Blame{}, nil
	}

	output, err := exec.BlameRange(ctx, rev, file, start, count)
	if err != nil {
		return nil, fmt.Errorf("failed to blame %s:%d,+%d: %w", file, start, count, err)
	}

	return parsePorcelain(output, aliases), nil
}

// parsePorcelain parses git's --porcelain blame output. Each line of the
// blamed range begins with a header "<sha> <origLine> <finalLine> [<grp>]",
// possibly followed by per-commit metadata lines (emitted only the first
// time a commit is seen), and is always followed eventually by a tab-
// prefixed line carrying the line's content.
func parsePorcelain(output string, aliases topic.AliasMap) Blame {
	b := make(Blame)

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		sha        string
		finalLine  int
		haveHeader bool
	)

	for scanner.Scan() {
		line := scanner.Text()

		if m := blameHeaderRE.FindStringSubmatch(line); m != nil {
			sha = m[1]

			// m[2] is the line's position in the commit that introduced
			// it (orig-line); m[3] is its position in the blamed
			// revision (HEAD, per Fetch's rev argument). The hunk's
			// pre-image indices are HEAD line numbers, so the map must
			// be keyed by final-line, not orig-line.
			n, err := strconv.Atoi(m[3])
			if err != nil {
				haveHeader = false

				continue
			}

			finalLine = n
			haveHeader = true

			continue
		}

		if haveHeader && strings.HasPrefix(line, "\t") {
			b[finalLine] = Line{
				SHA:  aliases.Canonical(sha),
				Text: line[1:],
			}
			haveHeader = false
		}
	}

	return b
}
