package diff

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRE matches "@@ -S[,C] +T[,D] @@" with an optional trailing
// section annotation, which is ignored.
var hunkHeaderRE = regexp.MustCompile(
	`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`,
)

// Parse consumes a unified-diff byte stream and yields an ordered sequence
// of Hunks. Malformed input that does not match any recognized prefix is
// silently skipped: the diff generator is trusted, and the parser is
// tolerant by design.
//
// Recognizes three line-prefix patterns at the stream's top level: "--- "
// sets the pre-image path, "+++ " sets the post-image path, and "@@ -..."
// opens a hunk. Hunks whose pre- and post-image paths differ (creations,
// deletions, renames) are discarded. Body lines are read greedily by first
// byte (' ', '+', '-', '\\') until a line fails to match, which is then
// re-examined as the next top-level line rather than consumed.
func Parse(r io.Reader) ([]*Hunk, error) {
	s := &scanner{br: bufio.NewReader(r)}

	var (
		hunks           []*Hunk
		oldPath         string
		newPath         string
		havePathHeaders bool
	)

	for {
		line, ok := s.next()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(line, "--- "):
			oldPath = stripPrefix(trimmedLine(strings.TrimPrefix(line, "--- ")))
			havePathHeaders = true

		case strings.HasPrefix(line, "+++ "):
			newPath = stripPrefix(trimmedLine(strings.TrimPrefix(line, "+++ ")))
			havePathHeaders = true

		case strings.HasPrefix(line, "@@ -"):
			hunk, ok := parseHunkHeader(line)
			if !ok {
				// Doesn't actually parse as a header; tolerate and move on.
				continue
			}

			keep := !havePathHeaders || oldPath == newPath
			if keep {
				hunk.File = newPath
			}

			readBody(s, hunk)

			if keep {
				hunks = append(hunks, hunk)
			}

		default:
			// Unrecognized line prefix: tolerated, skip.
		}
	}

	return hunks, nil
}

// parseHunkHeader parses a "@@ -S[,C] +T[,D] @@..." line into a Hunk with
// Start, Count, and Header populated. Count defaults to 1 when omitted.
func parseHunkHeader(line string) (*Hunk, bool) {
	header := trimmedLine(line)

	m := hunkHeaderRE.FindStringSubmatch(header)
	if m == nil {
		return nil, false
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}

	count := 1
	if m[2] != "" {
		count, err = strconv.Atoi(m[2])
		if err != nil {
			return nil, false
		}
	}

	return &Hunk{
		Start:  start,
		Count:  count,
		Header: header,
	}, true
}

// readBody reads body lines into hunk.Lines until a line's first byte is
// not one of ' ', '+', '-', '\\', or the stream ends. The terminating line
// is pushed back for the caller to re-examine.
func readBody(s *scanner, hunk *Hunk) {
	for {
		line, ok := s.next()
		if !ok {
			return
		}

		if line == "" || !isBodyPrefix(line[0]) {
			s.pushback(line)
			return
		}

		hunk.Lines = append(hunk.Lines, line)
	}
}

func isBodyPrefix(b byte) bool {
	switch b {
	case ' ', '+', '-', '\\':
		return true
	default:
		return false
	}
}

// stripPrefix removes a leading "a/" or "b/" from a diff path.
func stripPrefix(path string) string {
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}

	return path
}

// scanner reads raw lines (including their trailing newline, if any) from a
// bufio.Reader, with one line of pushback so a terminating body line can be
// re-examined as the next top-level line.
type scanner struct {
	br       *bufio.Reader
	buffered string
	haveBuf  bool
}

func (s *scanner) next() (string, bool) {
	if s.haveBuf {
		s.haveBuf = false

		return s.buffered, true
	}

	line, err := s.br.ReadString('\n')
	if line == "" && err != nil {
		return "", false
	}

	return line, true
}

func (s *scanner) pushback(line string) {
	s.buffered = line
	s.haveBuf = true
}
