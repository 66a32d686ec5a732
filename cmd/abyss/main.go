// Abyss is a descend-and-survive game played in the terminal.
// Usage: abyss [play] [--cli] [--script <file>] [--trace] [--config <file>]
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
