// Package service orchestrates the core components of the reserve:
// settlement engine, journal, outbox, and sequencer.
//
// It provides a clean API for maker operations, quoting, and taker
// trades, decoupled from network transports like gRPC.
package service
