// Command corvid is a UCI-speaking front end over the engine package.
// Grounded on zurichess's zurichess/main.go+uci.go (a stdin read loop
// dispatching to a small per-command switch), trimmed to the subset of
// UCI spec.md's Engine actually implements.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/corvid-chess/corvid/engine"
	"github.com/op/go-logging"
)

var logger = logging.MustGetLogger("corvid")

func main() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)

	eng := engine.NewEngine(64)
	bio := bufio.NewScanner(os.Stdin)
	bio.Buffer(make([]byte, 1<<20), 1<<20)

	for bio.Scan() {
		line := strings.TrimSpace(bio.Text())
		if line == "" {
			continue
		}
		if !execute(eng, line) {
			return
		}
	}
}

func execute(eng *engine.Engine, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "uci":
		fmt.Println("id name corvid")
		fmt.Println("id author corvid-chess")
		fmt.Println("uciok")
	case "isready":
		fmt.Println("readyok")
	case "ucinewgame":
		eng.ClearHashTable()
	case "setoption":
		handleSetOption(eng, fields)
	case "position":
		handlePosition(eng, fields)
	case "go":
		handleGo(eng, fields)
	case "stop":
		eng.Stop()
	case "quit":
		return false
	default:
		logger.Debugf("ignoring unknown command %q", line)
	}
	return true
}

func handleSetOption(eng *engine.Engine, fields []string) {
	name, value := "", ""
	for i, f := range fields {
		switch f {
		case "name":
			if i+1 < len(fields) {
				name = fields[i+1]
			}
		case "value":
			if i+1 < len(fields) {
				value = fields[i+1]
			}
		}
	}
	switch name {
	case "Hash":
		if mb, err := strconv.Atoi(value); err == nil {
			if err := eng.SetHashTableSize(mb); err != nil {
				logger.Errorf("setoption Hash %s: %v", value, err)
			}
		}
	case "MultiPV":
		if k, err := strconv.Atoi(value); err == nil {
			eng.SetNumVariations(k)
		}
	}
}

func handlePosition(eng *engine.Engine, fields []string) {
	if len(fields) < 2 {
		return
	}
	rest := fields[1:]
	fen := engine.StartFEN
	var moves []string

	if rest[0] == "fen" {
		rest = rest[1:]
		end := 0
		for end < len(rest) && rest[end] != "moves" {
			end++
		}
		fen = strings.Join(rest[:end], " ")
		rest = rest[end:]
	} else if rest[0] == "startpos" {
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == "moves" {
		moves = rest[1:]
	}

	if err := eng.SetPosition(fen, moves); err != nil {
		logger.Errorf("position: %v", err)
	}
}

func handleGo(eng *engine.Engine, fields []string) {
	timeMs := 1000
	treatAsTimeControl := false

	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "movetime":
			if i+1 < len(fields) {
				timeMs, _ = strconv.Atoi(fields[i+1])
			}
		case "wtime", "btime":
			if i+1 < len(fields) {
				timeMs, _ = strconv.Atoi(fields[i+1])
				treatAsTimeControl = true
			}
		}
	}

	eng.Search(timeMs, treatAsTimeControl)
	best, ok := eng.GetBestMove()
	if !ok {
		fmt.Println("bestmove 0000")
		return
	}
	fmt.Printf("bestmove %s\n", best.UCI())
}
