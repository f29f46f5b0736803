package wal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

var (
	ErrCorruptRecord = errors.New("wal: corrupt record")
	ErrSeqRegression = errors.New("wal: sequence regression")
)

// Replay streams every record in the journal, oldest segment first,
// calling fn for each one. Sequence numbers must be strictly
// increasing across the whole journal.
func Replay(dir string, fn func(*Record) error) error {
	files, err := filepath.Glob(filepath.Join(dir, "segment-*.wal"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	var lastSeq uint64
	for _, path := range files {
		if err := replaySegment(path, &lastSeq, fn); err != nil {
			return fmt.Errorf("wal: replay %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func replaySegment(path string, lastSeq *uint64, fn func(*Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		rec, err := readRecord(f)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if rec.Seq <= *lastSeq {
			return fmt.Errorf("%w: seq %d after %d", ErrSeqRegression, rec.Seq, *lastSeq)
		}
		*lastSeq = rec.Seq
		if err := fn(rec); err != nil {
			return err
		}
	}
}

func readRecord(r io.Reader) (*Record, error) {
	header := make([]byte, 21)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrCorruptRecord
		}
		return nil, err
	}

	payloadLen := binary.BigEndian.Uint32(header[17:21])
	rest := make([]byte, payloadLen+4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, ErrCorruptRecord
	}

	stored := binary.BigEndian.Uint32(rest[payloadLen:])
	frame := append(header, rest[:payloadLen]...)
	if !checksumValid(frame, stored) {
		return nil, ErrCorruptRecord
	}

	return &Record{
		Type: RecordType(header[0]),
		Seq:  binary.BigEndian.Uint64(header[1:9]),
		Time: int64(binary.BigEndian.Uint64(header[9:17])),
		Data: rest[:payloadLen],
	}, nil
}

// maxSeqInSegment scans a closed segment for its highest sequence
// number. Used by TruncateBefore to decide which segments a snapshot
// has made redundant.
func maxSeqInSegment(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var max uint64
	for {
		rec, err := readRecord(f)
		if err == io.EOF {
			return max, nil
		}
		if err != nil {
			return max, err
		}
		if rec.Seq > max {
			max = rec.Seq
		}
	}
}
