// Package book implements the resting-order side of the reserve: a
// rate-sorted doubly linked list of maker orders with hint-assisted
// insertion, and the per-maker bitmap allocator that hands out and
// recycles order ids.
//
// It knows nothing about balances, stakes or fees. The settlement
// engine owns the lists and is responsible for serializing mutations.
package book
