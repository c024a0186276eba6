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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkarger/AgateGo/internal/config"
	"github.com/tkarger/AgateGo/internal/position"
	. "github.com/tkarger/AgateGo/internal/types"
)

func TestEvaluateStartPosition(t *testing.T) {
	e := NewEvaluator()

	// with the tempo bonus switched off the symmetric start position
	// evaluates to exactly 0
	config.Settings.Eval.UseTempo = false
	defer func() { config.Settings.Eval.UseTempo = true }()
	assert.Equal(t, Value(0), e.Evaluate(position.NewPosition()))
}

func TestEvaluateMaterial(t *testing.T) {
	e := NewEvaluator()
	config.Settings.Eval.UseTempo = false
	defer func() { config.Settings.Eval.UseTempo = true }()

	// white is up a queen
	p := position.NewPosition("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	v := e.Evaluate(p)
	assert.Greater(t, int(v), 800)

	// the evaluation is white point of view - the same position with
	// black to move has the same value
	pb := position.NewPosition("4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	assert.Equal(t, v, e.Evaluate(pb))
}

func TestEvaluateSymmetry(t *testing.T) {
	e := NewEvaluator()
	config.Settings.Eval.UseTempo = false
	defer func() { config.Settings.Eval.UseTempo = true }()

	// a position and its color-mirrored counterpart must evaluate to
	// opposite values
	p := position.NewPosition("4k3/pp6/8/8/8/3N4/8/4K3 w - - 0 1")
	mirrored := position.NewPosition("4k3/8/3n4/8/8/8/PP6/4K3 b - - 0 1")
	assert.Equal(t, e.Evaluate(p), -e.Evaluate(mirrored))
}

func TestTempoBonus(t *testing.T) {
	e := NewEvaluator()
	p := position.NewPosition()
	white := e.Evaluate(p)
	black := e.Evaluate(position.NewPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"))
	assert.Equal(t, Value(config.Settings.Eval.TempoBonus), white)
	assert.Equal(t, -white, black)
}
