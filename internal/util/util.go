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

// Package util provides some utility functions not deserving their
// own package.
package util

import (
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

const mb = 1024 * 1024

// Nps calculates nodes per second from an uint64 and a duration.
func Nps(nodes uint64, duration time.Duration) uint64 {
	if duration.Nanoseconds() == 0 {
		return 0
	}
	return uint64(float64(nodes) / duration.Seconds())
}

// Abs returns the absolute value of an int.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Min returns the smaller of two ints.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two ints.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MemStat returns a string with the current memory usage of the
// process for debug logging.
func MemStat() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return out.Sprintf("Alloc = %d MB, TotalAlloc = %d MB, Sys = %d MB, NumGC = %d",
		m.Alloc/mb, m.TotalAlloc/mb, m.Sys/mb, m.NumGC)
}

// GcWithStats runs a garbage collection and returns a string with
// timing and memory information.
func GcWithStats() string {
	start := time.Now()
	runtime.GC()
	return out.Sprintf("GC took %s. %s", time.Since(start), MemStat())
}
