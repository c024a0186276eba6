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

package position

import (
	. "github.com/tkarger/AgateGo/internal/types"
)

// Zobrist tables for incremental position hashing. Initialized once
// at startup from a fixed seed so hashes are stable across runs.
var (
	zobristPieces     [ColorLength][PtLength][SqLength]Key
	zobristCastling   [CastlingRightsLength]Key
	zobristEpFile     [8]Key
	zobristNextPlayer Key
)

// xorshift64star pseudo random generator with a fixed seed. Quality
// is more than sufficient for zobrist keys and keeps the tables
// deterministic without a hard coded table in the source.
type prng struct {
	state uint64
}

func (r *prng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func init() {
	r := prng{state: 0x46B3E0D1FCFBF4A9}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := SqA1; sq <= SqH8; sq++ {
				zobristPieces[c][pt][sq] = Key(r.next())
			}
		}
	}
	for i := 0; i < CastlingRightsLength; i++ {
		zobristCastling[i] = Key(r.next())
	}
	for i := 0; i < 8; i++ {
		zobristEpFile[i] = Key(r.next())
	}
	zobristNextPlayer = Key(r.next())
}
