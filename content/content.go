// Package content embeds the default abyss written in the Lua content DSL.
package content

import (
	"embed"

	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/loader"
)

// FS holds the default .lua files at its root.
//
//go:embed *.lua
var FS embed.FS

// Default loads the embedded content.
func Default() (*state.Defs, error) {
	return loader.LoadFS(FS, ".")
}
