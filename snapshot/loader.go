package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"makerbook/engine"
)

// Load reads the snapshot in dir, if any. A missing snapshot is not
// an error: the caller starts from an empty reserve and replays the
// whole journal.
func Load(dir string) (*engine.State, uint64, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, 0, nil // snapshot optional
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, 0, err
	}
	return s.State, s.Seq, nil
}
