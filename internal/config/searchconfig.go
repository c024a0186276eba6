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

package config

// searchConfiguration is a data structure to hold the configuration of
// an instance of a search.
type searchConfiguration struct {
	// Threads and transposition table
	ThreadCount  int
	UseTT        bool
	TTSize       int
	MoveOverhead int

	// Aspiration windows in the iterative deepening driver
	UseAspiration   bool
	AspirationDepth int
	AspirationDelta int

	// Pre move loop prunings
	UseMateDistancePruning bool
	UseStaticNullMove      bool
	StaticNullMoveDepth    int
	StaticNullMoveMargin   int
	UseNullMove            bool
	NullMoveDepth          int
	UseIID                 bool
	IIDDepth               int

	// In move loop prunings
	UseFutility           bool
	FutilityDepth         int
	FutilityMargin        int
	UseHistoryPruning     bool
	HistoryPruningDepth   int
	UseSeeCapturePruning  bool
	SeePruningDepth       int
	SeeCaptureMult        int
	UseSeeQuietPruning    bool
	UseLmr                bool
	UseCheckExtension     bool

	// Quiescence search
	UseQSStandpat bool
	UseSeeInQS    bool
}

// sets defaults which might be overwritten by the config file.
func init() {
	Settings.Search.ThreadCount = 1
	Settings.Search.UseTT = true
	Settings.Search.TTSize = 64
	Settings.Search.MoveOverhead = 25

	Settings.Search.UseAspiration = true
	Settings.Search.AspirationDepth = 4
	Settings.Search.AspirationDelta = 25

	Settings.Search.UseMateDistancePruning = true
	Settings.Search.UseStaticNullMove = true
	Settings.Search.StaticNullMoveDepth = 5
	Settings.Search.StaticNullMoveMargin = 120
	Settings.Search.UseNullMove = true
	Settings.Search.NullMoveDepth = 3
	Settings.Search.UseIID = true
	Settings.Search.IIDDepth = 6

	Settings.Search.UseFutility = true
	Settings.Search.FutilityDepth = 6
	Settings.Search.FutilityMargin = 90
	Settings.Search.UseHistoryPruning = true
	Settings.Search.HistoryPruningDepth = 2
	Settings.Search.UseSeeCapturePruning = true
	Settings.Search.SeePruningDepth = 6
	Settings.Search.SeeCaptureMult = -23
	// quiet SEE pruning exists but has never proven itself - off
	Settings.Search.UseSeeQuietPruning = false
	Settings.Search.UseLmr = true
	Settings.Search.UseCheckExtension = true

	Settings.Search.UseQSStandpat = true
	Settings.Search.UseSeeInQS = true
}
