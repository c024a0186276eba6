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
	"github.com/tkarger/AgateGo/internal/config"
	. "github.com/tkarger/AgateGo/internal/types"
)

// qSearch is the quiescence search at the leaves of the main search.
// Only captures and promotions are searched (in see order, losing
// captures pruned) until the position is quiet enough to trust the
// static evaluation. The static evaluation serves as a standing pat:
// the side to move can usually do at least as well as doing nothing
// tactically.
func (t *thread) qSearch(p searchParams) Value {
	t.nodes++
	t.stats.QNodes++
	if p.ply > t.seldepth {
		t.seldepth = p.ply
	}
	if t.nodes%checkupInterval == 0 {
		t.checkup()
	}
	if t.nodes%publishInterval == 0 {
		t.publishNodeCount()
	}
	if t.selfStop {
		return ValueNA
	}

	standPat := t.evaluate(&p)
	if p.ply >= MaxDepth-1 {
		return standPat
	}

	if config.Settings.Search.UseQSStandpat {
		if standPat >= p.beta {
			t.stats.StandpatCuts++
			return p.beta
		}
		if standPat > p.alpha {
			p.alpha = standPat
		}
	}
	best := standPat

	o := &t.orderers[p.ply]
	o.reset(MoveNone, MoveNone, true)
	for {
		m, moveScore, ok := o.next(t, &p)
		if !ok {
			break
		}
		// skip losing exchanges - they rarely recover the material
		if config.Settings.Search.UseSeeInQS && moveScore < 0 {
			t.stats.SeePrunings++
			continue
		}

		next := p.pos.DoMove(m)
		value := -t.qSearch(newSearchParams(-p.beta, -p.alpha, 0, p.ply+1, -p.color, &next))
		if t.selfStop {
			return ValueNA
		}
		if value > best {
			best = value
		}
		if value > p.alpha {
			p.alpha = value
		}
		if p.alpha >= p.beta {
			t.stats.BetaCuts++
			break
		}
	}

	return best
}

// evaluate calls the static evaluator and adjusts the white point of
// view result to the side to move (negamax orientation).
func (t *thread) evaluate(p *searchParams) Value {
	t.stats.Evaluations++
	return t.eval.Evaluate(p.pos) * p.color
}
