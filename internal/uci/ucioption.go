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

package uci

import (
	"fmt"
	"strconv"

	"github.com/tkarger/AgateGo/internal/config"
)

// uciOption defines a single UCI option of the engine with its UCI
// announcement data and the handler applying a value.
type uciOption struct {
	name         string
	optionType   string
	defaultValue string
	minValue     string
	maxValue     string
	handler      func(*UciHandler, string)
}

func (o *uciOption) uciString() string {
	s := fmt.Sprintf("option name %s type %s", o.name, o.optionType)
	if o.optionType == "spin" {
		s += fmt.Sprintf(" default %s min %s max %s", o.defaultValue, o.minValue, o.maxValue)
	} else if o.defaultValue != "" {
		s += fmt.Sprintf(" default %s", o.defaultValue)
	}
	return s
}

var uciOptions = []uciOption{
	{
		name: "Hash", optionType: "spin", defaultValue: "64", minValue: "0", maxValue: "65536",
		handler: func(u *UciHandler, value string) {
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				config.Settings.Search.TTSize = n
				u.mySearch.ResizeCache()
			}
		},
	},
	{
		name: "Clear Hash", optionType: "button",
		handler: func(u *UciHandler, value string) {
			u.mySearch.ClearHash()
		},
	},
	{
		name: "Threads", optionType: "spin", defaultValue: "1", minValue: "1", maxValue: "128",
		handler: func(u *UciHandler, value string) {
			if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 128 {
				config.Settings.Search.ThreadCount = n
			}
		},
	},
	{
		name: "Move Overhead", optionType: "spin", defaultValue: "25", minValue: "0", maxValue: "20000",
		handler: func(u *UciHandler, value string) {
			if n, err := strconv.Atoi(value); err == nil {
				config.Settings.Search.MoveOverhead = n
				u.applySearchConfig()
			}
		},
	},
}

func uciOptionByName(name string) (*uciOption, bool) {
	for i := range uciOptions {
		if uciOptions[i].name == name {
			return &uciOptions[i], true
		}
	}
	return nil, false
}
