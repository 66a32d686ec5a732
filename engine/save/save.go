// Package save implements JSON serialization and deserialization of game state.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// FormatVersion is written into every save. Newer saves are refused.
const FormatVersion = 1

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Format      int             `json:"format"`
	Version     string          `json:"version"`
	Game        string          `json:"game"`
	SavedAt     time.Time       `json:"savedAt"`
	RNGSeed     int64           `json:"rngSeed"`
	RNGPosition int64           `json:"rngPosition"`
	State       types.GameState `json:"state"`
}

// Save serializes game state and the RNG position to JSON bytes.
func Save(defs *state.Defs, s types.GameState, seed, position int64) ([]byte, error) {
	data := SaveData{
		Format:      FormatVersion,
		Version:     defs.Game.Version,
		Game:        defs.Game.Title,
		SavedAt:     time.Now().UTC(),
		RNGSeed:     seed,
		RNGPosition: position,
		State:       s,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData. Fields missing from the
// snapshot keep the values of a fresh state, and the result is corrected
// back into a consistent shape.
func Load(defs *state.Defs, data []byte) (*SaveData, error) {
	sd := SaveData{State: state.NewState(defs)}
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	if sd.Format > FormatVersion {
		return nil, fmt.Errorf("save format %d is newer than supported %d", sd.Format, FormatVersion)
	}
	sanitize(defs, &sd.State)
	return &sd, nil
}

// sanitize repairs combinations a valid transition can never produce.
func sanitize(defs *state.Defs, s *types.GameState) {
	if s.Player.Name == "" {
		s.Player.Name = state.DefaultName
	}
	if s.Status.InCombat && s.Status.CurrentMonster == nil {
		s.Status.InCombat = false
	}
	if !s.Status.InCombat {
		s.Status.CurrentMonster = nil
	}
	if s.Resources.Gold < 0 {
		s.Resources.Gold = 0
	}
	if s.Machines == nil {
		s.Machines = map[string]int{}
	}
	for _, m := range defs.Machines {
		if _, ok := s.Machines[m.ID]; !ok {
			s.Machines[m.ID] = 0
		}
	}
	state.Settle(s)
}
