package service

import (
	"context"
	"log"
	"time"

	"makerbook/snapshot"
)

// StartSnapshotJob periodically exports the reserve, writes a
// snapshot, and truncates journal segments and acked outbox records
// the snapshot now covers.
func (s *ReserveService) StartSnapshotJob(
	ctx context.Context,
	dir string,
	interval time.Duration,
) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-t.C:
				// Export and seq read under the service mutex so the
				// snapshot never splits a command.
				s.mu.Lock()
				seq := s.seqGen.Current()
				state := s.res.ExportState()
				s.mu.Unlock()

				if err := w.Write(seq, state); err != nil {
					log.Printf("[snapshot] write failed: %v", err)
					continue
				}

				_ = s.journal.TruncateBefore(seq)
				if s.outbox != nil {
					_ = s.outbox.TruncateAcked(seq)
				}
			}
		}
	}()
}
