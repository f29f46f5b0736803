package snapshot

import (
	"time"

	"makerbook/engine"
)

const FileName = "snapshot.bin"

type Snapshot struct {
	Seq     uint64
	Created time.Time
	State   *engine.State
}
