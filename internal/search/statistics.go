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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

// Statistics are extra data and stats not essential for a functioning
// search. Each searcher thread owns one instance; the main thread's
// statistics drive the UCI output.
type Statistics struct {
	NormalNodes uint64
	QNodes      uint64
	QRoots      uint64

	Evaluations uint64

	BetaCuts    uint64
	BetaCuts1st uint64

	TTHit  uint64
	TTMiss uint64
	TTCuts uint64
	Mdp    uint64

	StaticNullPrunings uint64
	NullMoveCuts       uint64
	IIDSearches        uint64

	FutilityPrunings uint64
	HistoryPrunings  uint64
	SeePrunings      uint64

	LmrReductions uint64
	LmrResearches uint64
	PvsResearches uint64

	StandpatCuts uint64
	Checkmates   uint64
	Stalemates   uint64
	Draws        uint64

	AspirationResearches uint64

	CurrentIterationDepth   int
	CurrentSearchDepth      int
	CurrentExtraSearchDepth int
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}
