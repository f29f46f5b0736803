package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"makerbook/engine"
)

type Writer struct {
	Dir string
}

func (w *Writer) Write(seq uint64, state *engine.State) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(w.Dir, FileName+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	s := Snapshot{
		Seq:     seq,
		Created: time.Now(),
		State:   state,
	}

	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, filepath.Join(w.Dir, FileName))
}
