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

// Package search implements the search core of the chess engine: a
// principal variation search with quiescence search, layered pruning
// and reduction heuristics, a shared transposition table, per thread
// heuristic tables and an iterative deepening driver under the control
// of a time controller. Multiple searcher threads (lazy SMP) share
// only the transposition table and the stop/clock controller.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/tkarger/AgateGo/internal/config"
	myLogging "github.com/tkarger/AgateGo/internal/logging"
	"github.com/tkarger/AgateGo/internal/position"
	"github.com/tkarger/AgateGo/internal/transpositiontable"
	. "github.com/tkarger/AgateGo/internal/types"
	"github.com/tkarger/AgateGo/internal/uciInterface"
	"github.com/tkarger/AgateGo/internal/util"
)

// Search represents the data structure for a chess engine search.
// Create a new instance with NewSearch().
type Search struct {
	log *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt *transpositiontable.TtTable

	// search state
	stopFlag        int32 // atomic
	startTime       time.Time
	hasResult       bool
	lastSearchResult *Result
	currentPosition *position.Position
	searchLimits    *Limits
	timeControl     *TimeControl
	moveOverhead    uint64
	gameHistory     []RepetitionEntry

	// shared per thread counters published by the searcher threads
	// and read by the controller and the UCI reporting
	threadNodes    []uint64
	threadSeldepth []int64

	lastUciUpdateTime time.Time
	mainThread        *thread
}

// NewSearch creates a new Search instance. If no UCI handler is set
// all output is written to the log.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		moveOverhead:  DefaultMoveOverhead,
	}
}

// NewGame stops any running search and resets caches and heuristics
// for a different game.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.gameHistory = nil
	s.hasResult = false
}

// SetUciHandler sets the UCI handler to communicate with the UCI user
// interface. If not set output will be logged only.
func (s *Search) SetUciHandler(h uciInterface.UciDriver) {
	s.uciHandlerPtr = h
}

// SetGameHistory provides the positions played so far in the game for
// repetition detection across the root. Entries are ordered from the
// start of the game, the root position itself is not included.
func (s *Search) SetGameHistory(entries []RepetitionEntry) {
	s.gameHistory = append(s.gameHistory[:0], entries...)
}

// SetMoveOverhead sets the per move communication overhead in
// milliseconds, clamped to [MinMoveOverhead, MaxMoveOverhead].
func (s *Search) SetMoveOverhead(ms int) {
	overhead := uint64(util.Max(int(MinMoveOverhead), util.Min(int(MaxMoveOverhead), ms)))
	s.moveOverhead = overhead
}

// IsReady initializes the search (e.g. allocates the transposition
// table) and signals readyok to the UCI handler.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// StartSearch starts the search on the given position with the given
// limits in a separate goroutine. It returns as soon as the search is
// initialized. Stop with StopSearch, query with IsSearching.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible. The
// search stops gracefully and the result is sent to the UCI handler.
// Blocks until the search has stopped.
func (s *Search) StopSearch() {
	s.setStop()
	s.WaitWhileSearching()
}

// IsSearching checks if the search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// ClearHash clears the transposition table. Ignored with a warning
// while searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoString(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoString("Hash cleared")
	}
}

// ResizeCache resizes and clears the transposition table. Ignored with
// a warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoString(msg)
		s.log.Warning(msg)
		return
	}
	s.tt = nil
	s.initialize()
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.sendInfoString(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	return *s.lastSearchResult
}

// HasResult is true when a search has finished with a result.
func (s *Search) HasResult() bool {
	return s.hasResult
}

// NodesVisited returns the total number of nodes of the last search
// over all threads.
func (s *Search) NodesVisited() uint64 {
	return s.totalNodes()
}

// Statistics returns the statistics of the main searcher thread of
// the last search.
func (s *Search) Statistics() *Statistics {
	if s.mainThread == nil {
		return &Statistics{}
	}
	return &s.mainThread.stats
}

// //////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////

// run is started by StartSearch in a separate goroutine. It prepares
// the searcher threads, runs the main thread's iterative deepening in
// place and reports the result.
func (s *Search) run(pos *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.log.Infof("Searching: %s", pos.StringFen())

	atomic.StoreInt32(&s.stopFlag, 0)
	s.hasResult = false
	s.lastUciUpdateTime = s.startTime
	s.initialize()
	s.SetMoveOverhead(config.Settings.Search.MoveOverhead)
	s.timeControl = s.setupTimeControl(pos, sl)
	s.log.Infof("Time control: %s, move overhead %d ms", s.timeControl.String(), s.moveOverhead)

	// a position without legal moves is already decided - no search
	if result, over := s.checkRootGameOver(pos); over {
		s.lastSearchResult = result
		s.hasResult = true
		s.setStop()
		s.initSemaphore.Release(1)
		if s.uciHandlerPtr != nil {
			s.uciHandlerPtr.SendResult(result.BestMove, result.PonderMove)
		}
		return
	}

	threadCount := config.Settings.Search.ThreadCount
	if threadCount < 1 {
		threadCount = 1
	}
	s.threadNodes = make([]uint64, threadCount)
	s.threadSeldepth = make([]int64, threadCount)

	maxDepth := MaxDepth - 1
	if sl.Depth > 0 && sl.Depth < maxDepth {
		maxDepth = sl.Depth
	}

	// lazy SMP: helper threads run the identical iterative deepening
	// on their own position clone; they share only the tt and profit
	// from each other's entries
	threads := make([]*thread, threadCount)
	for i := 0; i < threadCount; i++ {
		threads[i] = newThread(i, s, *pos)
	}
	s.mainThread = threads[0]

	var wg sync.WaitGroup
	for i := 1; i < threadCount; i++ {
		wg.Add(1)
		go func(t *thread) {
			defer wg.Done()
			t.iterativeDeepening(maxDepth)
		}(threads[i])
	}

	// release the init phase lock to let StartSearch return
	s.initSemaphore.Release(1)

	threads[0].iterativeDeepening(maxDepth)

	// in infinite mode the search result must not be sent before a
	// stop was received - relaxed busy wait
	if sl.Infinite && !s.stopped() {
		s.log.Debug("Search finished before stop in infinite mode - waiting for stop")
		for !s.stopped() {
			time.Sleep(5 * time.Millisecond)
		}
	}

	// main thread is done - stop the helpers and wait for them
	s.setStop()
	wg.Wait()

	result := threads[0].result
	if result == nil {
		// not even depth 1 completed - fall back to any legal move
		s.log.Warning("Search stopped before a depth was completed")
		result = &Result{
			BestMove:  firstLegalMove(pos),
			BestValue: ValueNA,
		}
	}
	result.SearchTime = time.Since(s.startTime)
	result.Nodes = s.totalNodes()

	s.log.Info(out.Sprintf("Search finished after %s", result.SearchTime))
	s.log.Info(out.Sprintf("Depth was %d(%d) with %d nodes visited. NPS = %d nps",
		result.SearchDepth, result.ExtraDepth, result.Nodes,
		util.Nps(result.Nodes, result.SearchTime)))
	s.log.Debugf("Search stats: %s", threads[0].stats.String())
	if config.LogLevel >= 5 {
		s.log.Debugf("History stats:\n%s", threads[0].hist.String())
	}
	s.log.Infof("Search result: %s", result.String())

	s.lastSearchResult = result
	s.hasResult = true

	s.setStop()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(result.BestMove, result.PonderMove)
	}
}

// checkRootGameOver handles the checkmate and stalemate cases of the
// root position which need no search at all.
func (s *Search) checkRootGameOver(pos *position.Position) (*Result, bool) {
	if firstLegalMove(pos) != MoveNone {
		return nil, false
	}
	result := &Result{BestMove: MoveNone}
	if pos.HasCheck() {
		msg := "Search called on a mate position"
		s.sendInfoString(msg)
		s.log.Warning(msg)
		result.BestValue = -ValueMate
	} else {
		msg := "Search called on a stalemate position"
		s.sendInfoString(msg)
		s.log.Warning(msg)
		result.BestValue = ValueDraw
	}
	return result, true
}

// initialize sets up the transposition table if necessary.
func (s *Search) initialize() {
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TTSize
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.NewTtTable(sizeInMByte)
		}
	} else {
		s.log.Info("Transposition Table is disabled in configuration")
		s.tt = transpositiontable.NewTtTable(0)
	}
}

// setupTimeControl maps the UCI go limits onto a time control type.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) *TimeControl {
	if !sl.TimeControl || sl.Infinite {
		return NewTimeControl(NewInfinite())
	}
	if sl.MoveTime > 0 {
		return NewTimeControl(NewMoveTime(uint64(sl.MoveTime.Milliseconds())))
	}
	var myTime, myInc time.Duration
	switch p.NextPlayer() {
	case White:
		myTime, myInc = sl.WhiteTime, sl.WhiteInc
	case Black:
		myTime, myInc = sl.BlackTime, sl.BlackInc
	}
	if sl.MovesToGo > 0 {
		return NewTimeControl(NewTournament(uint64(myTime.Milliseconds()), uint64(myInc.Milliseconds()), sl.MovesToGo))
	}
	return NewTimeControl(NewIncremental(uint64(myTime.Milliseconds()), uint64(myInc.Milliseconds())))
}

// stop flag handling

func (s *Search) setStop() {
	atomic.StoreInt32(&s.stopFlag, 1)
}

func (s *Search) stopped() bool {
	return atomic.LoadInt32(&s.stopFlag) != 0
}

// nodeLimitReached checks the node limit of the search limits against
// the published node counters of all threads.
func (s *Search) nodeLimitReached() bool {
	return s.searchLimits.Nodes > 0 && s.totalNodes() >= s.searchLimits.Nodes
}

// updateThreadStats is called by the searcher threads to publish
// their node and seldepth counters. The main thread's update also
// drives the periodic UCI info output.
func (s *Search) updateThreadStats(id int, nodes uint64, seldepth int) {
	atomic.StoreUint64(&s.threadNodes[id], nodes)
	atomic.StoreInt64(&s.threadSeldepth[id], int64(seldepth))
	if id == 0 {
		s.sendSearchUpdate()
	}
}

func (s *Search) totalNodes() uint64 {
	var sum uint64
	for i := range s.threadNodes {
		sum += atomic.LoadUint64(&s.threadNodes[i])
	}
	return sum
}

func (s *Search) maxSeldepth() int {
	var max int64
	for i := range s.threadSeldepth {
		if d := atomic.LoadInt64(&s.threadSeldepth[i]); d > max {
			max = d
		}
	}
	return int(max)
}

// nps relative to the search start. Limited to a sanity value for
// very short times.
func (s *Search) nps() uint64 {
	nps := util.Nps(s.totalNodes(), time.Since(s.startTime)+100)
	if nps > 200_000_000 {
		nps = 0
	}
	return nps
}

// //////////////////////////////////////////////////////
// UCI reporting
// //////////////////////////////////////////////////////

func (s *Search) sendInfoString(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	}
}

// sendIterationEndInfo reports a completed iteration.
func (s *Search) sendIterationEndInfo(t *thread, value Value) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			t.stats.CurrentIterationDepth,
			s.maxSeldepth(),
			value,
			s.totalNodes(),
			s.nps(),
			time.Since(s.startTime),
			*t.currentPv)
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d pv %s",
			t.stats.CurrentIterationDepth, s.maxSeldepth(), value.String(), s.totalNodes(),
			s.nps(), time.Since(s.startTime).Milliseconds(), t.currentPv.StringUci()))
	}
}

// sendPvUpdate reports a new best root line found mid iteration.
func (s *Search) sendPvUpdate(t *thread, value Value) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			t.stats.CurrentIterationDepth,
			s.maxSeldepth(),
			value,
			s.totalNodes(),
			s.nps(),
			time.Since(s.startTime),
			*t.currentPv)
	}
}

// sendCurrmove reports the root move currently being searched.
func (s *Search) sendCurrmove(depth int, m Move, moveNumber int) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendCurrentRootMove(depth, m, moveNumber)
	}
}

// sendSearchUpdate sends a periodic update (about once per second).
func (s *Search) sendSearchUpdate() {
	if time.Since(s.lastUciUpdateTime) < time.Second {
		return
	}
	s.lastUciUpdateTime = time.Now()
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendSearchUpdate(
			s.mainThread.stats.CurrentSearchDepth,
			s.maxSeldepth(),
			s.totalNodes(),
			s.nps(),
			time.Since(s.startTime),
			hashfull)
	}
}
