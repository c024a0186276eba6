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

// AgateGo is a UCI compatible chess engine. Start without arguments
// and connect a UCI user interface or type UCI commands directly.
package main

import (
	"flag"
	"fmt"

	"github.com/pkg/profile"

	"github.com/tkarger/AgateGo/internal/config"
	"github.com/tkarger/AgateGo/internal/uci"
)

var (
	versionInfo = "v1.0.0"
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration file")
	logLevel := flag.Int("loglvl", -1, "general log level (0=critical to 5=debug)")
	searchLogLevel := flag.Int("searchloglvl", -1, "search log level (0=critical to 5=debug)")
	cpuProfile := flag.Bool("cpuprofile", false, "write a cpu profile")
	memProfile := flag.Bool("memprofile", false, "write a memory profile")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if *logLevel >= 0 {
		config.LogLevel = *logLevel
	}
	if *searchLogLevel >= 0 {
		config.SearchLogLevel = *searchLogLevel
	}

	fmt.Printf("%s %s by %s\n", uci.EngineName, versionInfo, uci.EngineAuthor)

	handler := uci.NewUciHandler()
	handler.Loop()
}
