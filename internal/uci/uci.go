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

// Package uci implements the UCI protocol handling of the engine:
// reading commands from an input stream, driving the search and
// writing engine output to an output stream.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/tkarger/AgateGo/internal/config"
	myLogging "github.com/tkarger/AgateGo/internal/logging"
	"github.com/tkarger/AgateGo/internal/movegen"
	"github.com/tkarger/AgateGo/internal/moveslice"
	"github.com/tkarger/AgateGo/internal/position"
	"github.com/tkarger/AgateGo/internal/search"
	. "github.com/tkarger/AgateGo/internal/types"
)

// EngineName and EngineAuthor as reported via the UCI protocol.
const (
	EngineName   = "AgateGo"
	EngineAuthor = "Tobias Karger"
)

// UciHandler is the data structure for the UCI protocol handler.
// Create an instance with NewUciHandler().
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	log    *logging.Logger
	uciLog *logging.Logger

	mySearch    *search.Search
	myMoveGen   *movegen.Movegen
	myPosition  *position.Position
	gameHistory []search.RepetitionEntry
}

// NewUciHandler creates a new UciHandler reading from Stdin and
// writing to Stdout.
func NewUciHandler() *UciHandler {
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		log:        myLogging.GetLog(),
		uciLog:     myLogging.GetUciLog(),
		mySearch:   search.NewSearch(),
		myMoveGen:  movegen.NewMoveGen(),
		myPosition: position.NewPosition(),
	}
	u.mySearch.SetUciHandler(u)
	return u
}

// Loop starts the main UCI loop reading commands until "quit" or EOF.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		cmd := strings.TrimSpace(u.InIo.Text())
		if cmd == "" {
			continue
		}
		u.uciLog.Infof("<< %s", cmd)
		if !u.handleCommand(cmd) {
			break
		}
	}
	u.mySearch.StopSearch()
}

// Command handles a single UCI command line. Returns false on quit.
// Exposed for tests.
func (u *UciHandler) Command(cmd string) bool {
	return u.handleCommand(cmd)
}

func (u *UciHandler) handleCommand(cmd string) bool {
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return true
	}
	switch tokens[0] {
	case "uci":
		u.uciCommand()
	case "isready":
		u.mySearch.IsReady()
	case "setoption":
		u.setOptionCommand(tokens)
	case "ucinewgame":
		u.newGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.mySearch.StopSearch()
	case "quit":
		return false
	case "noop":
		// used by tests
	default:
		u.log.Warningf("Unknown UCI command: %s", cmd)
	}
	return true
}

// //////////////////////////////////////////////////////
// Commands
// //////////////////////////////////////////////////////

func (u *UciHandler) uciCommand() {
	u.send(fmt.Sprintf("id name %s", EngineName))
	u.send(fmt.Sprintf("id author %s", EngineAuthor))
	for _, o := range uciOptions {
		u.send(o.uciString())
	}
	u.send("uciok")
}

func (u *UciHandler) newGameCommand() {
	u.mySearch.NewGame()
	u.myPosition = position.NewPosition()
	u.gameHistory = u.gameHistory[:0]
}

// positionCommand sets up the position from "position [startpos|fen
// <fen>] [moves <m1> <m2> ...]" and records the played positions for
// repetition detection across the search root.
func (u *UciHandler) positionCommand(tokens []string) {
	i := 1
	fen := position.StartFen
	if i < len(tokens) && tokens[i] == "fen" {
		i++
		var fenParts []string
		for i < len(tokens) && tokens[i] != "moves" {
			fenParts = append(fenParts, tokens[i])
			i++
		}
		fen = strings.Join(fenParts, " ")
	} else if i < len(tokens) && tokens[i] == "startpos" {
		i++
	}
	p, err := position.NewPositionFen(fen)
	if err != nil {
		u.sendInfoStringf("invalid position: %s", err)
		return
	}

	u.gameHistory = u.gameHistory[:0]
	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m := u.matchMove(p, tokens[i])
			if m == MoveNone {
				u.sendInfoStringf("invalid move: %s", tokens[i])
				return
			}
			u.gameHistory = append(u.gameHistory, search.RepetitionEntry{
				Hash:  p.ZobristKey(),
				Reset: p.HalfMoveClock() == 0,
			})
			next := p.DoMove(m)
			p = &next
		}
	}
	u.myPosition = p
	u.mySearch.SetGameHistory(u.gameHistory)
}

// matchMove finds the legal move of the position matching the UCI
// move string or returns MoveNone.
func (u *UciHandler) matchMove(p *position.Position, uciMove string) Move {
	for _, m := range *u.myMoveGen.GenerateLegalMoves(p, movegen.GenAll) {
		if m.StringUci() == uciMove {
			return m.MoveOf()
		}
	}
	return MoveNone
}

func (u *UciHandler) goCommand(tokens []string) {
	sl := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			sl.Infinite = true
		case "depth":
			i++
			sl.Depth = u.intToken(tokens, i)
		case "nodes":
			i++
			sl.Nodes = uint64(u.intToken(tokens, i))
		case "movetime":
			i++
			sl.MoveTime = time.Duration(u.intToken(tokens, i)) * time.Millisecond
			sl.TimeControl = true
		case "wtime":
			i++
			sl.WhiteTime = time.Duration(u.intToken(tokens, i)) * time.Millisecond
			sl.TimeControl = true
		case "btime":
			i++
			sl.BlackTime = time.Duration(u.intToken(tokens, i)) * time.Millisecond
			sl.TimeControl = true
		case "winc":
			i++
			sl.WhiteInc = time.Duration(u.intToken(tokens, i)) * time.Millisecond
		case "binc":
			i++
			sl.BlackInc = time.Duration(u.intToken(tokens, i)) * time.Millisecond
		case "movestogo":
			i++
			sl.MovesToGo = u.intToken(tokens, i)
		default:
			u.log.Warningf("Unknown go parameter: %s", tokens[i])
		}
		i++
	}
	u.mySearch.StartSearch(*u.myPosition, *sl)
}

func (u *UciHandler) intToken(tokens []string, i int) int {
	if i >= len(tokens) {
		return 0
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil {
		u.log.Warningf("Invalid number: %s", tokens[i])
		return 0
	}
	return n
}

// //////////////////////////////////////////////////////
// UciDriver interface for the search
// //////////////////////////////////////////////////////

// SendReadyOk signals readyok to the GUI.
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an info string to the GUI.
func (u *UciHandler) SendInfoString(info string) {
	u.send(fmt.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends the result of a completed iteration.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, usedTime time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, usedTime.Milliseconds(), pv.StringUci()))
}

// SendSearchUpdate sends a periodic search update.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, usedTime time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, usedTime.Milliseconds(), hashfull))
}

// SendCurrentRootMove sends the currently searched root move.
func (u *UciHandler) SendCurrentRootMove(depth int, move Move, moveNumber int) {
	u.send(fmt.Sprintf("info depth %d currmove %s currmovenumber %d",
		depth, move.StringUci(), moveNumber))
}

// SendResult sends the final best move of the search.
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	msg := fmt.Sprintf("bestmove %s", bestMove.StringUci())
	if ponderMove != MoveNone {
		msg += fmt.Sprintf(" ponder %s", ponderMove.StringUci())
	}
	u.send(msg)
}

// //////////////////////////////////////////////////////
// Output
// //////////////////////////////////////////////////////

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}

func (u *UciHandler) sendInfoStringf(format string, a ...interface{}) {
	u.SendInfoString(fmt.Sprintf(format, a...))
}

// setOptionCommand applies "setoption name <name> [value <x>]".
func (u *UciHandler) setOptionCommand(tokens []string) {
	var name, value string
	i := 1
	if i < len(tokens) && tokens[i] == "name" {
		i++
		var nameParts []string
		for i < len(tokens) && tokens[i] != "value" {
			nameParts = append(nameParts, tokens[i])
			i++
		}
		name = strings.Join(nameParts, " ")
	}
	if i < len(tokens) && tokens[i] == "value" {
		i++
		value = strings.Join(tokens[i:], " ")
	}
	o, found := uciOptionByName(name)
	if !found {
		u.sendInfoStringf("unknown option: %s", name)
		return
	}
	o.handler(u, value)
}

// applySearchConfig pushes option changes into the search instance.
func (u *UciHandler) applySearchConfig() {
	u.mySearch.SetMoveOverhead(config.Settings.Search.MoveOverhead)
}
