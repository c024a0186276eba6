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

// Package evaluator computes a static evaluation of a chess position.
// The evaluation is always from the white point of view - a positive
// value means white is better. The search is responsible for adjusting
// the sign for the side to move (negamax).
package evaluator

import (
	"github.com/tkarger/AgateGo/internal/config"
	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

// Evaluator is the data structure for evaluating a position.
// Create a new instance with NewEvaluator().
type Evaluator struct {
}

// NewEvaluator creates a new evaluator instance.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the static evaluation of the position in
// centipawns from the white point of view. Material and piece square
// values are interpolated between middle game and end game by the
// game phase of the position.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	midValue := int(p.Material(White) - p.Material(Black))
	endValue := midValue

	if config.Settings.Eval.UsePsqt {
		for c := White; c <= Black; c++ {
			sign := 1
			if c == Black {
				sign = -1
			}
			for pt := Pawn; pt <= King; pt++ {
				pieces := p.PiecesBb(c, pt)
				for pieces != BbZero {
					sq := pieces.PopLsb()
					if c == Black {
						sq ^= 56 // mirror vertically
					}
					midValue += sign * int(psqtMid[pt][sq])
					endValue += sign * int(psqtEnd[pt][sq])
				}
			}
		}
	}

	phase := p.GamePhaseFactor()
	value := int(float64(midValue)*phase + float64(endValue)*(1.0-phase))

	// small bonus for having the move
	if config.Settings.Eval.UseTempo {
		tempo := config.Settings.Eval.TempoBonus
		if p.NextPlayer() == White {
			value += tempo
		} else {
			value -= tempo
		}
	}

	return Value(value)
}
