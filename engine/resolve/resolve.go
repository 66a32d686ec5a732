// Package resolve maps names typed by the player to content IDs.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// AmbiguityError indicates multiple entries matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no entry matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't know of any %q", e.Name)
}

type candidate struct {
	id   string
	name string
}

// Item resolves name against every item in the content tables.
func Item(defs *state.Defs, name string) (string, error) {
	cands := make([]candidate, 0, len(defs.Items))
	for _, it := range defs.Items {
		cands = append(cands, candidate{it.ID, it.Name})
	}
	return match(cands, name)
}

// Held resolves name against the items in the player's pack.
func Held(defs *state.Defs, s *types.GameState, name string) (string, error) {
	cands := make([]candidate, 0, len(s.Inventory))
	for _, st := range s.Inventory {
		cands = append(cands, candidate{st.ID, state.ItemName(defs, st.ID)})
	}
	return match(cands, name)
}

// Recipe resolves name against recipe ids and the names of their results.
func Recipe(defs *state.Defs, name string) (string, error) {
	cands := make([]candidate, 0, len(defs.Recipes))
	for _, r := range defs.Recipes {
		cands = append(cands, candidate{r.ID, state.ItemName(defs, r.Result)})
	}
	return match(cands, name)
}

// Machine resolves name against the machine lines.
func Machine(defs *state.Defs, name string) (string, error) {
	cands := make([]candidate, 0, len(defs.Machines))
	for _, m := range defs.Machines {
		cands = append(cands, candidate{m.ID, m.Name})
	}
	return match(cands, name)
}

// Option resolves name against an NPC's options by id or label.
func Option(npc types.NPCDef, name string) (string, error) {
	cands := make([]candidate, 0, len(npc.Options))
	for _, o := range npc.Options {
		cands = append(cands, candidate{o.ID, o.Label})
	}
	return match(cands, name)
}

// match resolves a single name string to an id. An exact id wins outright;
// otherwise every name match is collected.
func match(cands []candidate, name string) (string, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return "", &NotFoundError{Name: name}
	}

	// 1. Exact id match.
	for _, c := range cands {
		if strings.ToLower(c.id) == nameLower {
			return c.id, nil
		}
	}

	// 2. Search by display name.
	var matches []string
	for _, c := range cands {
		if containsStr(matches, c.id) {
			continue
		}
		if matchesName(c, nameLower) {
			matches = append(matches, c.id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}

// matchesName checks if a candidate matches the query (case-insensitive).
// Supports exact name match, word-based partial match, and underscore
// normalization against the id.
func matchesName(c candidate, nameLower string) bool {
	entryLower := strings.ToLower(c.name)
	if entryLower == nameLower {
		return true
	}
	// Word-based partial match: "whistle" matches "white whistle".
	for _, word := range strings.Fields(entryLower) {
		if word == nameLower {
			return true
		}
	}
	// Underscore normalization: "outpost kit" matches id "outpost_kit".
	return strings.ReplaceAll(nameLower, " ", "_") == strings.ToLower(c.id)
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
