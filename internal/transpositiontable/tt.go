//
// AgateGo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2023-2026 Tobias Karger
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements a shared transposition table
// (cache) for a chess engine search. The table is safe for concurrent
// use by several searcher threads without locks: entries are written
// with two aligned atomic stores and validated with an XOR scheme on
// read (see TtEntry). Resize and Clear must not be called while a
// search is running.
package transpositiontable

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/tkarger/AgateGo/internal/logging"
	. "github.com/tkarger/AgateGo/internal/types"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB is the maximal memory usage of the tt.
	MaxSizeInMB = 65_536

	// ClusterSize is the number of entries per bucket. A lookup scans
	// the whole bucket, a store picks its slot by the replacement
	// scheme below.
	ClusterSize = 4
)

// TtTable is the transposition table object holding data and state.
// Create an instance with NewTtTable().
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	bucketMask         uint64
	numberOfBuckets    uint64
	maxNumberOfEntries uint64

	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of MB as a
// maximum of memory usage. The number of buckets is the largest power
// of 2 fitting into this size so bucket addressing is a bit mask.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize resizes the tt table. All entries will be cleared.
// Not thread safe - must not be called during a search.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}
	tt.sizeInByte = uint64(sizeInMByte) * MB
	bucketSize := uint64(ClusterSize * TtEntrySize)
	tt.numberOfBuckets = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/bucketSize))))
	tt.bucketMask = tt.numberOfBuckets - 1
	tt.maxNumberOfEntries = tt.numberOfBuckets * ClusterSize
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
}

// Clear clears all entries of the tt.
// Not thread safe - must not be called during a search.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	atomic.StoreUint64(&tt.numberOfPuts, 0)
	atomic.StoreUint64(&tt.numberOfCollisions, 0)
	atomic.StoreUint64(&tt.numberOfProbes, 0)
	atomic.StoreUint64(&tt.numberOfHits, 0)
	atomic.StoreUint64(&tt.numberOfMisses, 0)
}

// Probe looks up the given key. Returns a potential cutoff value, the
// best move and the static eval of a previous search of the same
// position. The cutoff value is ValueNA when the stored bound does not
// permit a cutoff for the given depth and window. Move and eval are
// returned even when no cutoff is possible (MoveNone / ValueNA if
// unknown). Mate values are adjusted by the node's ply so they stay
// position absolute in the table (see valueToTT / valueFromTT).
func (tt *TtTable) Probe(key Key, depth int, ply int, alpha Value, beta Value) (cutValue Value, move Move, eval Value) {
	cutValue = ValueNA
	move = MoveNone
	eval = ValueNA
	if tt.maxNumberOfEntries == 0 {
		return
	}
	atomic.AddUint64(&tt.numberOfProbes, 1)
	first := tt.bucket(key)
	for i := uint64(0); i < ClusterSize; i++ {
		e := &tt.data[first+i]
		k := atomic.LoadUint64(&e.key)
		d := atomic.LoadUint64(&e.data)
		// torn or foreign entries fail this test and are skipped
		if k^d != uint64(key) || d == 0 {
			continue
		}
		atomic.AddUint64(&tt.numberOfHits, 1)
		move = decodeMove(d)
		eval = decodeEval(d)
		if int(decodeDepth(d)) >= depth {
			value := valueFromTT(decodeValue(d), ply)
			switch {
			case !value.IsValid():
				// no cut
			case decodeVtype(d) == EXACT:
				cutValue = value
			case decodeVtype(d) == ALPHA && value <= alpha:
				cutValue = value
			case decodeVtype(d) == BETA && value >= beta:
				cutValue = value
			}
		}
		return
	}
	atomic.AddUint64(&tt.numberOfMisses, 1)
	return
}

// GetMove returns only the stored move for the position or MoveNone.
// Used to extract ponder moves and pv lines after a search.
func (tt *TtTable) GetMove(key Key) Move {
	if tt.maxNumberOfEntries == 0 {
		return MoveNone
	}
	first := tt.bucket(key)
	for i := uint64(0); i < ClusterSize; i++ {
		e := &tt.data[first+i]
		k := atomic.LoadUint64(&e.key)
		d := atomic.LoadUint64(&e.data)
		if k^d == uint64(key) && d != 0 {
			return decodeMove(d)
		}
	}
	return MoveNone
}

// Put stores a search result into the tt. Replacement within a bucket:
// the slot with the same key is always updated, empty slots are used
// first, otherwise the entry of an older search (age differs from the
// current root ply counter) or with the lowest depth is replaced.
func (tt *TtTable) Put(key Key, move Move, depth int8, ply int, value Value, valueType ValueType, eval Value, rootPly int) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	atomic.AddUint64(&tt.numberOfPuts, 1)
	age := uint8(rootPly) & ageEntryMask
	first := tt.bucket(key)

	replaceIdx := first
	replaceScore := int(^uint(0) >> 1) // max int
	for i := uint64(0); i < ClusterSize; i++ {
		e := &tt.data[first+i]
		k := atomic.LoadUint64(&e.key)
		d := atomic.LoadUint64(&e.data)
		if d == 0 || k^d == uint64(key) {
			// empty slot or same position - use it
			replaceIdx = first + i
			replaceScore = -1
			break
		}
		// prefer replacing old and shallow entries
		score := int(decodeDepth(d))
		if decodeAge(d) == age {
			score += MaxDepth
		}
		if score < replaceScore {
			replaceScore = score
			replaceIdx = first + i
		}
	}
	if replaceScore >= 0 {
		atomic.AddUint64(&tt.numberOfCollisions, 1)
	}

	data := encodeEntryData(move, valueToTT(value, ply), eval, depth, valueType, age)
	e := &tt.data[replaceIdx]
	atomic.StoreUint64(&e.data, data)
	atomic.StoreUint64(&e.key, uint64(key)^data)
}

// Hashfull returns an approximation of how full the table is in
// permill as per UCI.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	n := uint64(1000)
	if tt.maxNumberOfEntries < n {
		n = tt.maxNumberOfEntries
	}
	used := uint64(0)
	for i := uint64(0); i < n; i++ {
		if atomic.LoadUint64(&tt.data[i].data) != 0 {
			used++
		}
	}
	return int((1000 * used) / n)
}

// Len returns the number of non empty entries in the tt. Linear scan,
// only meant for tests and log output.
func (tt *TtTable) Len() uint64 {
	count := uint64(0)
	for i := range tt.data {
		if atomic.LoadUint64(&tt.data[i].data) != 0 {
			count++
		}
	}
	return count
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	probes := atomic.LoadUint64(&tt.numberOfProbes)
	hits := atomic.LoadUint64(&tt.numberOfHits)
	misses := atomic.LoadUint64(&tt.numberOfMisses)
	return out.Sprintf("TT: size %d MB capacity %d entries of size %d Bytes puts %d collisions %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, TtEntrySize,
		atomic.LoadUint64(&tt.numberOfPuts), atomic.LoadUint64(&tt.numberOfCollisions),
		probes, hits, (hits*100)/(1+probes), misses, (misses*100)/(1+probes))
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// bucket returns the index of the first entry of the bucket for the key.
func (tt *TtTable) bucket(key Key) uint64 {
	return (uint64(key) & tt.bucketMask) * ClusterSize
}

// valueToTT corrects the value for mate distance when storing to the
// tt. Mate values are stored relative to the position instead of
// relative to the root so entries can be reused at any ply.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value + Value(ply)
		}
		return value - Value(ply)
	}
	return value
}

// valueFromTT corrects the value for mate distance when reading from
// the tt.
func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value - Value(ply)
		}
		return value + Value(ply)
	}
	return value
}
