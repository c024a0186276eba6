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

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseTime(t *testing.T) {
	assert.EqualValues(t, 5000, NewMoveTime(5000).BaseTime())
	assert.EqualValues(t, 300, NewTournament(9000, 0, 30).BaseTime())
	// incremental is treated like a tournament with 25 moves to go
	assert.EqualValues(t, 1000, NewIncremental(25000, 100).BaseTime())
	assert.EqualValues(t, 1100, NewIncremental(25000, 100).CompoundTime())

	assert.Panics(t, func() { NewInfinite().BaseTime() })
	assert.Panics(t, func() { NewInfinite().TimeLeft() })
}

func TestTimeOverInfinite(t *testing.T) {
	tc := NewTimeControl(NewInfinite())
	assert.False(t, tc.TimeOver(1_000_000_000, 25))
}

func TestTimeOverMoveTime(t *testing.T) {
	tc := NewTimeControl(NewMoveTime(1000))
	assert.False(t, tc.TimeOver(500, 25))
	assert.False(t, tc.TimeOver(975, 25))
	assert.True(t, tc.TimeOver(976, 25))
}

func TestTimeOverHardLimit(t *testing.T) {
	// whatever the aspired time says, never run into the flag
	tc := NewTimeControl(NewIncremental(1000, 0))
	assert.True(t, tc.TimeOver(901, 25))
}

func TestTimeOverStablePv(t *testing.T) {
	tc := NewTimeControl(NewIncremental(100_000, 1000))
	// aspired time is capped against base and compound time
	assert.True(t, tc.AspiredTime > 0)

	// with an unstable pv and plenty of time left we keep searching
	tc.StablePv = false
	assert.False(t, tc.TimeOver(tc.AspiredTime+1, 0))

	// a stable pv permits stopping once the aspired time is spent
	tc.StablePv = true
	assert.True(t, tc.TimeOver(tc.AspiredTime+1, 0))
	assert.False(t, tc.TimeOver(tc.AspiredTime-1, 0))
}

func TestUpdateAspiredTime(t *testing.T) {
	tc := NewTimeControl(NewIncremental(100_000, 1000))
	before := tc.AspiredTime
	tc.UpdateAspiredTime(2.0)
	assert.True(t, tc.AspiredTime >= before)
	// upper clamp: never more than 5x base time plus increment
	upper := uint64(5.0*float64(tc.Typ.BaseTime()) + float64(tc.Typ.IncrementTime()))
	for i := 0; i < 10; i++ {
		tc.UpdateAspiredTime(10.0)
	}
	assert.True(t, tc.AspiredTime <= upper)
}

func TestMoveOverheadClamping(t *testing.T) {
	s := NewSearch()
	s.SetMoveOverhead(-5)
	assert.EqualValues(t, MinMoveOverhead, s.moveOverhead)
	s.SetMoveOverhead(100_000)
	assert.EqualValues(t, MaxMoveOverhead, s.moveOverhead)
	s.SetMoveOverhead(40)
	assert.EqualValues(t, 40, s.moveOverhead)
}
