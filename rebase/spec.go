// Package rebase builds a read-only autosquash preview: given the topic
// commits in a range and their resolved fixup/squash aliases, it reorders
// them the way `git rebase -i --autosquash` would, without ever invoking
// rebase. This repurposes the teacher's rebase-todo types (Action, Plan)
// from "execute a rebase" to "describe the rebase a human would run next",
// per spec section 9.1.
package rebase

import (
	"strings"

	"github.com/bwoodley/git-fixup/topic"
)

// ActionType is a single rebase-todo verb.
type ActionType string

const (
	ActionPick   ActionType = "pick"
	ActionSquash ActionType = "squash"
	ActionFixup  ActionType = "fixup"
)

// PlanEntry is one line of the autosquash preview: a commit and the action
// that would be applied to it once reordered next to its target.
type PlanEntry struct {
	Action  ActionType
	SHA     string
	Subject string
}

// Plan is the ordered sequence of entries `git rebase -i --autosquash`
// would produce for a topic range.
type Plan struct {
	Entries []PlanEntry
}

// BuildPlan reorders the commits in order (oldest first, as returned by the
// topic-range inspector in log order) so that every fixup/squash commit
// immediately follows its canonical target, mirroring
// git -i --autosquash's reordering pass. Commits whose alias could not be
// resolved are left in their original position as a plain pick, since
// ResolveAliases already failed fatally on any unresolved alias before a
// Plan would ever be built from it.
func BuildPlan(order []string, subjects topic.CommitSubjects, aliases topic.AliasMap) *Plan {
	byTarget := make(map[string][]string)

	for _, sha := range order {
		if target, ok := aliases[sha]; ok {
			byTarget[target] = append(byTarget[target], sha)
		}
	}

	placed := make(map[string]bool)
	entries := make([]PlanEntry, 0, len(order))

	for _, sha := range order {
		if placed[sha] {
			continue
		}

		if _, isAlias := aliases[sha]; isAlias {
			// Placed alongside its target below; an alias whose target
			// never appears in order is picked up by the final loop
			// (defensive: shouldn't happen for a well-formed topic range).
			continue
		}

		entries = append(entries, PlanEntry{
			Action:  ActionPick,
			SHA:     sha,
			Subject: subjects[sha],
		})
		placed[sha] = true

		for _, aliasSHA := range byTarget[sha] {
			if placed[aliasSHA] {
				continue
			}

			entries = append(entries, PlanEntry{
				Action:  aliasAction(subjects[aliasSHA]),
				SHA:     aliasSHA,
				Subject: subjects[aliasSHA],
			})
			placed[aliasSHA] = true
		}
	}

	// Any alias whose target never appeared in order (shouldn't happen for
	// a topic range built from the same commit set, but kept so the plan
	// never silently drops a commit) is appended as a plain pick.
	for _, sha := range order {
		if !placed[sha] {
			entries = append(entries, PlanEntry{
				Action:  ActionPick,
				SHA:     sha,
				Subject: subjects[sha],
			})
			placed[sha] = true
		}
	}

	return &Plan{Entries: entries}
}

// aliasAction reports whether subject marks a squash! or fixup! commit.
func aliasAction(subject string) ActionType {
	if strings.HasPrefix(subject, "squash! ") {
		return ActionSquash
	}

	return ActionFixup
}

// String renders the plan the way a rebase-todo file would: one
// "<action> <sha> <subject>" line per entry.
func (p *Plan) String() string {
	var sb strings.Builder

	for _, e := range p.Entries {
		sb.WriteString(string(e.Action))
		sb.WriteByte(' ')
		sb.WriteString(e.SHA)
		sb.WriteByte(' ')
		sb.WriteString(e.Subject)
		sb.WriteByte('\n')
	}

	return sb.String()
}
