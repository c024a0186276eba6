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

package transpositiontable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/tkarger/AgateGo/internal/types"
)

func TestEntryEncoding(t *testing.T) {
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	data := encodeEntryData(move, Value(123), Value(-55), 17, BETA, 99)
	assert.Equal(t, move, decodeMove(data))
	assert.Equal(t, Value(123), decodeValue(data))
	assert.Equal(t, Value(-55), decodeEval(data))
	assert.Equal(t, int8(17), decodeDepth(data))
	assert.Equal(t, BETA, decodeVtype(data))
	assert.Equal(t, uint8(99), decodeAge(data))

	// negative values survive the packing
	data = encodeEntryData(move, Value(-20000), Value(20000), 127, ALPHA, 0)
	assert.Equal(t, Value(-20000), decodeValue(data))
	assert.Equal(t, Value(20000), decodeEval(data))
}

func TestPutAndProbe(t *testing.T) {
	tt := NewTtTable(4)
	key := Key(0x1234_5678_9ABC_DEF0)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)

	tt.Put(key, move, 8, 0, Value(77), EXACT, Value(33), 1)

	// exact entry with enough depth allows a cutoff in any window
	cut, m, eval := tt.Probe(key, 8, 0, Value(-100), Value(100))
	assert.Equal(t, Value(77), cut)
	assert.Equal(t, move, m)
	assert.Equal(t, Value(33), eval)

	// insufficient depth returns the move but no cutoff
	cut, m, _ = tt.Probe(key, 9, 0, Value(-100), Value(100))
	assert.Equal(t, ValueNA, cut)
	assert.Equal(t, move, m)

	// miss on a different key
	cut, m, eval = tt.Probe(key^1, 1, 0, Value(-100), Value(100))
	assert.Equal(t, ValueNA, cut)
	assert.Equal(t, MoveNone, m)
	assert.Equal(t, ValueNA, eval)
}

func TestProbeBounds(t *testing.T) {
	tt := NewTtTable(4)
	key := Key(42)
	move := CreateMove(SqG1, SqF3, Normal, PtNone)

	// lower bound (fail high) cuts only when value >= beta
	tt.Put(key, move, 5, 0, Value(200), BETA, ValueNA, 1)
	cut, _, _ := tt.Probe(key, 5, 0, Value(0), Value(100))
	assert.Equal(t, Value(200), cut)
	cut, _, _ = tt.Probe(key, 5, 0, Value(0), Value(300))
	assert.Equal(t, ValueNA, cut)

	// upper bound (fail low) cuts only when value <= alpha
	tt.Put(key, move, 5, 0, Value(-50), ALPHA, ValueNA, 1)
	cut, _, _ = tt.Probe(key, 5, 0, Value(0), Value(100))
	assert.Equal(t, Value(-50), cut)
	cut, _, _ = tt.Probe(key, 5, 0, Value(-100), Value(100))
	assert.Equal(t, ValueNA, cut)
}

func TestMateValueNormalization(t *testing.T) {
	tt := NewTtTable(4)
	key := Key(77)
	move := CreateMove(SqA1, SqA8, Normal, PtNone)

	// a mate found 3 plies below the root stored at ply 3 must be
	// position absolute in the table and ply relative on probe
	mate := ValueMate - 5
	tt.Put(key, move, 10, 3, mate, EXACT, ValueNA, 1)
	cut, _, _ := tt.Probe(key, 10, 3, -ValueInfinite, ValueInfinite)
	assert.Equal(t, mate, cut)

	// probing the same entry at a different ply adjusts the distance
	cut, _, _ = tt.Probe(key, 10, 5, -ValueInfinite, ValueInfinite)
	assert.Equal(t, mate-2, cut)
}

func TestTornEntryIsIgnored(t *testing.T) {
	tt := NewTtTable(4)
	key := Key(0xDEAD_BEEF)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	tt.Put(key, move, 5, 0, Value(10), EXACT, ValueNA, 1)

	// simulate a torn write: overwrite the data word only, the xor
	// validation must reject the entry
	idx := tt.bucket(key)
	tt.data[idx].data ^= 0xFFFF

	cut, m, _ := tt.Probe(key, 1, 0, -ValueInfinite, ValueInfinite)
	assert.Equal(t, ValueNA, cut)
	assert.Equal(t, MoveNone, m)
}

func TestReplacementScheme(t *testing.T) {
	tt := NewTtTable(1)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)

	// fill one bucket with entries colliding on the bucket mask
	base := Key(1)
	var keys []Key
	for k := Key(1); len(keys) < ClusterSize+1; k++ {
		if tt.bucket(k) == tt.bucket(base) {
			keys = append(keys, k)
		}
	}

	// deep entries of the current generation fill the bucket
	for i, k := range keys[:ClusterSize] {
		tt.Put(k, move, int8(20+i), 0, Value(1), EXACT, ValueNA, 7)
	}
	// the shallowest entry is the victim for the next store
	tt.Put(keys[ClusterSize], move, 1, 0, Value(2), EXACT, ValueNA, 7)
	cut, _, _ := tt.Probe(keys[ClusterSize], 1, 0, -ValueInfinite, ValueInfinite)
	assert.Equal(t, Value(2), cut)
	// the deepest original entries survived
	_, m, _ := tt.Probe(keys[ClusterSize-1], 1, 0, -ValueInfinite, ValueInfinite)
	assert.Equal(t, move, m)

	// an update of the same position reuses its slot
	before := tt.Len()
	tt.Put(keys[1], move, 30, 0, Value(3), EXACT, ValueNA, 7)
	assert.Equal(t, before, tt.Len())
}

func TestClearAndResize(t *testing.T) {
	tt := NewTtTable(2)
	tt.Put(Key(1), MoveNone, 1, 0, Value(1), EXACT, ValueNA, 0)
	assert.EqualValues(t, 1, tt.Len())
	tt.Clear()
	assert.EqualValues(t, 0, tt.Len())

	tt.Resize(1)
	assert.EqualValues(t, 0, tt.Len())
}

func TestConcurrentAccess(t *testing.T) {
	tt := NewTtTable(8)
	move := CreateMove(SqE2, SqE4, Normal, PtNone)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			for i := uint64(0); i < 10_000; i++ {
				key := Key(seed*1_000_003 + i)
				tt.Put(key, move, int8(i%32), 0, Value(int16(i%1000)), EXACT, ValueNA, 0)
				cut, m, _ := tt.Probe(key, 0, 0, -ValueInfinite, ValueInfinite)
				// whatever is read must be self consistent - either a
				// miss or the values stored for this key
				if m != MoveNone {
					assert.Equal(t, move, m)
				}
				_ = cut
			}
		}(uint64(w))
	}
	wg.Wait()
}
