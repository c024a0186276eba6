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
	"fmt"
)

// Move overhead limits in milliseconds. The overhead accounts for the
// latency between engine and GUI and is subtracted from the budget.
const (
	DefaultMoveOverhead uint64 = 25
	MinMoveOverhead     uint64 = 0
	MaxMoveOverhead     uint64 = 20_000
)

// TimeControlMode enumerates the supported time control types.
type TimeControlMode int

// TimeControlMode constants.
const (
	Infinite TimeControlMode = iota
	MoveTime
	Incremental
	Tournament
)

// TimeControlType is the tagged variant describing the time budget of
// the game. All times are milliseconds.
type TimeControlType struct {
	Mode      TimeControlMode
	Time      uint64
	Increment uint64
	MovesToGo int
}

// NewInfinite returns an infinite time control type.
func NewInfinite() TimeControlType {
	return TimeControlType{Mode: Infinite}
}

// NewMoveTime returns a fixed time per move control.
func NewMoveTime(ms uint64) TimeControlType {
	return TimeControlType{Mode: MoveTime, Time: ms}
}

// NewIncremental returns a remaining-time plus increment control.
func NewIncremental(time uint64, inc uint64) TimeControlType {
	return TimeControlType{Mode: Incremental, Time: time, Increment: inc}
}

// NewTournament returns a remaining-time control with a fixed number
// of moves until the next time allotment.
func NewTournament(time uint64, inc uint64, movesToGo int) TimeControlType {
	return TimeControlType{Mode: Tournament, Time: time, Increment: inc, MovesToGo: movesToGo}
}

// BaseTime returns the share of the remaining time allotted to a
// single move. Panics when called on an infinite control - that is a
// programmer error, the caller must check the mode first.
func (t TimeControlType) BaseTime() uint64 {
	switch t.Mode {
	case Infinite:
		panic("don't call BaseTime on an infinite time control")
	case MoveTime:
		return t.Time
	case Incremental:
		// an incremental game is treated like a tournament game
		// with 25 moves to go
		return NewTournament(t.Time, t.Increment, 25).BaseTime()
	default: // Tournament
		return t.Time / uint64(t.MovesToGo)
	}
}

// IncrementTime returns the increment per move.
func (t TimeControlType) IncrementTime() uint64 {
	switch t.Mode {
	case Infinite:
		panic("don't call IncrementTime on an infinite time control")
	case MoveTime:
		return 0
	default:
		return t.Increment
	}
}

// CompoundTime is the base time plus the increment.
func (t TimeControlType) CompoundTime() uint64 {
	return t.BaseTime() + t.IncrementTime()
}

// TimeLeft returns the total remaining time on the clock.
func (t TimeControlType) TimeLeft() uint64 {
	if t.Mode == Infinite {
		panic("don't call TimeLeft on an infinite time control")
	}
	return t.Time
}

// TimeControl decides when the search has to stop. It consists of the
// control type, the time the engine aspires to spend on this move and
// a flag whether the root pv has been stable over the last iterations
// (a stable pv justifies stopping early).
type TimeControl struct {
	Typ         TimeControlType
	StablePv    bool
	AspiredTime uint64
}

// NewTimeControl creates a TimeControl for the given type with the
// initial aspired time.
func NewTimeControl(typ TimeControlType) *TimeControl {
	tc := &TimeControl{
		Typ:      typ,
		StablePv: false,
	}
	if typ.Mode != Infinite {
		tc.AspiredTime = typ.CompoundTime()
		tc.UpdateAspiredTime(1.0)
	}
	return tc
}

// UpdateAspiredTime scales the aspired time by the given factor and
// clamps it against the remaining time so the engine can neither
// overspend nor give a move less than a sane minimum share.
func (tc *TimeControl) UpdateAspiredTime(mult float64) {
	if tc.Typ.Mode == Infinite {
		return
	}
	aspired := uint64(float64(tc.AspiredTime) * mult)
	upper := uint64(5.0*float64(tc.Typ.BaseTime()) + float64(tc.Typ.IncrementTime()))
	if aspired > upper {
		aspired = upper
	}
	lower := uint64(0.4 * float64(tc.Typ.CompoundTime()))
	if aspired < lower {
		aspired = lower
	}
	hard := tc.Typ.TimeLeft()/3 + tc.Typ.IncrementTime()
	if aspired > hard {
		aspired = hard
	}
	tc.AspiredTime = aspired
}

// TimeOver decides if the search has to be stopped after spending the
// given time with the given move overhead.
func (tc *TimeControl) TimeOver(timeSpent uint64, moveOverhead uint64) bool {
	switch tc.Typ.Mode {
	case Infinite:
		return false
	case MoveTime:
		return timeSpent+moveOverhead > tc.Typ.Time
	default: // Incremental, Tournament
		if timeSpent+4*moveOverhead > tc.Typ.TimeLeft() {
			return true
		}
		exceeded := timeSpent+moveOverhead >
			uint64(float64(tc.Typ.CompoundTime())+2.0*float64(tc.Typ.BaseTime()))
		return (tc.StablePv || exceeded) && timeSpent+moveOverhead > tc.AspiredTime
	}
}

// String returns a description of the time control for logging.
func (tc *TimeControl) String() string {
	switch tc.Typ.Mode {
	case Infinite:
		return "infinite"
	case MoveTime:
		return fmt.Sprintf("movetime %d ms", tc.Typ.Time)
	case Incremental:
		return fmt.Sprintf("time %d ms inc %d ms aspired %d ms", tc.Typ.Time, tc.Typ.Increment, tc.AspiredTime)
	default:
		return fmt.Sprintf("time %d ms inc %d ms movestogo %d aspired %d ms",
			tc.Typ.Time, tc.Typ.Increment, tc.Typ.MovesToGo, tc.AspiredTime)
	}
}
