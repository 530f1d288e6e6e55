package topic

import (
	"fmt"
	"regexp"
	"strings"
)

// AliasMap maps a topic commit identifier that is itself a fixup/squash of
// another topic commit to that commit's canonical identifier. Aliases are
// not transitively collapsed: the double-prefix check in ResolveAliases
// forbids the only shape that would require it.
type AliasMap map[string]string

// Canonical rewrites sha through the alias map, if present.
func (a AliasMap) Canonical(sha string) string {
	if target, ok := a[sha]; ok {
		return target
	}

	return sha
}

var fixupSubjectRE = regexp.MustCompile(`^(fixup|squash)! (.*)$`)

// ResolveAliases collapses commits whose subject marks them as a fixup or
// squash of another topic commit to that commit's identifier.
//
// For each commit whose subject matches "fixup! <prefix>" or
// "squash! <prefix>": if <prefix> itself begins with a fixup!/squash! token
// (so the subject carries two of them), resolution fails fatally (nested
// fixup-of-fixup is not supported).
// Otherwise every other topic commit whose subject starts with <prefix> is a
// candidate; zero candidates is a fatal "no fixup target" error, more than
// one is a fatal "ambiguous fixup target" error, and exactly one resolves
// the alias.
func ResolveAliases(subjects CommitSubjects) (AliasMap, error) {
	aliases := make(AliasMap)

	for sha, subject := range subjects {
		m := fixupSubjectRE.FindStringSubmatch(subject)
		if m == nil {
			continue
		}

		prefix := m[2]

		if fixupSubjectRE.MatchString(prefix) {
			return nil, fmt.Errorf(
				"commit %s is a fixup of a fixup (nested fixup-of-fixup "+
					"is not supported): %q", sha, subject,
			)
		}

		target, err := findUniqueTarget(subjects, sha, prefix)
		if err != nil {
			return nil, fmt.Errorf("resolving alias for %s: %w", sha, err)
		}

		aliases[sha] = target
	}

	return aliases, nil
}

// findUniqueTarget finds the single other commit in subjects whose subject
// starts with prefix.
func findUniqueTarget(subjects CommitSubjects, self, prefix string) (string, error) {
	var match string

	found := 0

	for sha, subject := range subjects {
		if sha == self {
			continue
		}

		if strings.HasPrefix(subject, prefix) {
			match = sha
			found++
		}
	}

	switch found {
	case 0:
		return "", fmt.Errorf("no fixup target for prefix %q", prefix)
	case 1:
		return match, nil
	default:
		return "", fmt.Errorf("ambiguous fixup target for prefix %q", prefix)
	}
}
