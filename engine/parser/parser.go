// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/abysscore/types"
)

var verbAliases = map[string]string{
	// Movement
	"d":       "descend",
	"down":    "descend",
	"dive":    "descend",
	"delve":   "descend",
	"u":       "ascend",
	"up":      "ascend",
	"climb":   "ascend",
	"surface": "ascend",

	// Combat
	"a":        "attack",
	"hit":      "attack",
	"strike":   "attack",
	"kill":     "attack",
	"z":        "wait",
	"defend":   "wait",
	"block":    "wait",
	"run":      "flee",
	"escape":   "flee",
	"befriend": "tame",
	"engage":   "fight",
	"face":     "fight",

	// Inventory
	"purchase": "buy",
	"eat":      "use",
	"drink":    "use",
	"consume":  "use",
	"wield":    "equip",
	"wear":     "equip",
	"remove":   "unequip",
	"make":     "craft",
	"build":    "craft",
	"identify": "appraise",
	"clean":    "appraise",
	"inv":      "inventory",
	"i":        "inventory",
	"pack":     "inventory",

	// Encounters
	"ask":    "talk",
	"speak":  "talk",
	"chat":   "talk",
	"choose": "talk",
	"ignore": "leave",
	"skip":   "leave",
	"walk":   "leave",
	"l":      "look",

	// Outposts and machines
	"camp":    "deploy",
	"fuel":    "refuel",
	"gather":  "collect",
	"empty":   "collect",
	"improve": "upgrade",

	// Miscellaneous
	"st":      "status",
	"stats":   "status",
	"whistle": "status",
	"scout":   "forecast",
	"ahead":   "forecast",
	"shift":   "transform",
	"change":  "transform",
	"revive":  "respawn",
	"restart": "respawn",
	"call":    "name",
	"rest":    "tick",
	"sleep":   "tick",
	"rename":  "name",
	"h":       "help",
	"?":       "help",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "from": true,
	"about": true, "for": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	raw := strings.Fields(input)
	words := strings.Fields(strings.ToLower(input))

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]

	// Names keep their casing and are never split.
	if verb == "name" {
		return types.Intent{Verb: verb, Object: strings.Join(raw[1:], " ")}
	}

	rest := words[1:]

	// Strip articles ("the", "a", "an").
	rest = stripArticles(rest)

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "go down", "run away", "talk to" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "go", "head", "move":
		if words[1] == "down" || words[1] == "deeper" {
			return append([]string{"descend"}, words[2:]...)
		}
		if words[1] == "up" {
			return append([]string{"ascend"}, words[2:]...)
		}
	case "run", "get":
		if words[1] == "away" {
			return append([]string{"flee"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "put":
		if words[1] == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "take":
		if words[1] == "off" {
			return append([]string{"unequip"}, words[2:]...)
		}
	case "walk":
		if words[1] == "away" || words[1] == "on" {
			return []string{"leave"}
		}
	case "set":
		if words[1] == "up" || words[1] == "camp" {
			return append([]string{"deploy"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
