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

// Package uciInterface defines the interface between the search and
// the UCI protocol handler to decouple the two packages and avoid an
// import cycle.
package uciInterface

import (
	"time"

	"github.com/tkarger/AgateGo/internal/moveslice"
	. "github.com/tkarger/AgateGo/internal/types"
)

// UciDriver is the interface against which the search reports. The
// uci package implements it; tests may provide a mock.
type UciDriver interface {
	// SendReadyOk signals the GUI that the engine is initialized.
	SendReadyOk()

	// SendInfoString sends any string to the GUI prefixed as info.
	SendInfoString(info string)

	// SendIterationEndInfo reports the result of a completed
	// iteration of the iterative deepening search.
	SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, usedTime time.Duration, pv moveslice.MoveSlice)

	// SendSearchUpdate reports a periodic update during search.
	SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, usedTime time.Duration, hashfull int)

	// SendCurrentRootMove reports the root move currently searched.
	SendCurrentRootMove(depth int, move Move, moveNumber int)

	// SendResult sends the final best move (and ponder move) of a
	// search.
	SendResult(bestMove Move, ponderMove Move)
}
