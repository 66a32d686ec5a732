package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/enginetest"
	"github.com/nathoo/abysscore/session"
	"github.com/nathoo/abysscore/store/file"
	"github.com/nathoo/abysscore/types"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := enginetest.Defs()
	defs.Game.Intro = "Welcome to the test."

	st, err := file.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New(engine.New(defs, 1), st, nil, nil, session.Config{
		Slot:             "main",
		PassiveTick:      time.Hour,
		FastTick:         time.Hour,
		AutosaveInterval: time.Hour,
		PresenceInterval: time.Hour,
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go sess.Run(ctx)

	var out bytes.Buffer
	c := New(sess, defs, st, "main")
	c.In = strings.NewReader(input)
	c.Out = &out
	return c, &out
}

func run(t *testing.T, input string) string {
	t.Helper()
	c, out := newTestCLI(t, input)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestCLI_IntroAndLook(t *testing.T) {
	output := run(t, "")
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text")
	}
	if !strings.Contains(output, "Edge of the Abyss") {
		t.Errorf("expected the opening look to name the layer, got:\n%s", output)
	}
}

func TestCLI_Quit(t *testing.T) {
	output := run(t, "/quit\nname Ozen\n")
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye message")
	}
	if strings.Contains(output, "Ozen") {
		t.Error("nothing after /quit should run")
	}
}

func TestCLI_CommentsAndBlankLinesSkipped(t *testing.T) {
	output := run(t, "# a comment\n\n   \nname Lyza\n")
	if !strings.Contains(output, "You are now known as Lyza.") {
		t.Errorf("expected the name command to run, got:\n%s", output)
	}
}

func TestCLI_Again(t *testing.T) {
	output := run(t, "g\nbuy ration\nagain\n")
	if !strings.Contains(output, "Nothing to repeat.") {
		t.Error("expected a message when there is nothing to repeat")
	}
	if strings.Count(output, "Ration") < 2 {
		t.Errorf("expected two purchases, got:\n%s", output)
	}
}

func TestCLI_InventoryTable(t *testing.T) {
	output := run(t, "inventory\n")
	if !strings.Contains(output, "Item") || !strings.Contains(output, "Ration") {
		t.Errorf("expected a table listing the starting ration, got:\n%s", output)
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	output := run(t, "name Riko\n/save\nname Reg\n/load\n/slots\n")
	if !strings.Contains(output, "[Game saved to main.]") {
		t.Errorf("expected a save confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "[Game loaded from main.]") {
		t.Errorf("expected a load confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "  main") {
		t.Error("expected /slots to list the save")
	}
}

func TestCLI_LoadMissing(t *testing.T) {
	output := run(t, "/load nowhere\n")
	if !strings.Contains(output, "[No save named nowhere.]") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestCLI_StateDumpsYAML(t *testing.T) {
	output := run(t, "/state\n")
	if !strings.Contains(output, "player:") {
		t.Errorf("expected a YAML dump, got:\n%s", output)
	}
}

func TestCLI_UnknownMeta(t *testing.T) {
	output := run(t, "/dance\n")
	if !strings.Contains(output, "Unknown command: /dance") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_Trace(t *testing.T) {
	output := run(t, "/trace\nsell moon\nequip ration\n")
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace toggle message")
	}
	if !strings.Contains(output, "trace: rejected") {
		t.Errorf("expected a rejected trace line, got:\n%s", output)
	}
}

func TestInventoryTable_Empty(t *testing.T) {
	if got := InventoryTable(enginetest.Defs(), types.GameState{}); got != "Your pack is empty." {
		t.Errorf("got %q", got)
	}
}
