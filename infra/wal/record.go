// Package wal is the reserve's mutation journal: a segmented
// append-only log of every committed state change, replayed on
// startup to rebuild the book and ledger.
package wal

import "time"

type RecordType uint8

const (
	RecordDeposit RecordType = iota
	RecordWithdraw
	RecordSubmit
	RecordSubmitBatch
	RecordUpdate
	RecordUpdateBatch
	RecordCancel
	RecordTrade
)

type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
