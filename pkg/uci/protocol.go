package uci

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/vesperchess/vesper/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Stop()
	Search(searchParams common.SearchParams) common.SearchInfo
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	logger       *log.Logger
	positions    []common.Position
	thinking     bool
	engineOutput chan common.SearchInfo
	searchResult chan common.SearchInfo
}

func New(name, author, version string, engine Engine, options []Option) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:      name,
		author:    author,
		version:   version,
		engine:    engine,
		options:   options,
		positions: []common.Position{initPosition},
	}
}

func (uci *Protocol) Run(logger *log.Logger) {
	uci.logger = logger

	var commands = make(chan string)
	go func() {
		defer close(commands)
		readCommands(commands)
	}()

	for {
		select {
		case si, ok := <-uci.engineOutput:
			if ok {
				fmt.Println(searchInfoToUci(si))
			} else {
				uci.emitBestMove(<-uci.searchResult)
			}
		case commandLine, ok := <-commands:
			if !ok {
				// quit
				uci.joinSearch()
				return
			}
			if err := uci.handle(commandLine); err != nil {
				logger.Println(err)
			}
		}
	}
}

func readCommands(commands chan<- string) {
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (uci *Protocol) emitBestMove(si common.SearchInfo) {
	if len(si.MainLine) != 0 {
		fmt.Printf("bestmove %v\n", si.MainLine[0])
	} else {
		fmt.Println("bestmove 0000")
	}
	uci.thinking = false
	uci.engineOutput = nil
	uci.searchResult = nil
}

// joinSearch cancels an in-flight search and blocks until the worker has
// returned and bestmove is emitted. Driver state is only mutated afterwards.
func (uci *Protocol) joinSearch() {
	if !uci.thinking {
		return
	}
	uci.engine.Stop()
	for {
		var si, ok = <-uci.engineOutput
		if !ok {
			break
		}
		fmt.Println(searchInfoToUci(si))
	}
	uci.emitBestMove(<-uci.searchResult)
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking {
		switch commandName {
		case "stop":
			uci.engine.Stop()
			return nil
		case "isready":
			fmt.Println("readyok")
			return nil
		default:
			uci.joinSearch()
		}
	}

	switch commandName {
	case "uci":
		return uci.uciCommand(fields)
	case "setoption":
		return uci.setOptionCommand(fields)
	case "isready":
		return uci.isReadyCommand(fields)
	case "position":
		return uci.positionCommand(fields)
	case "go":
		return uci.goCommand(fields)
	case "ucinewgame":
		return uci.uciNewGameCommand(fields)
	case "stop":
		return nil
	case "d", "print":
		return uci.printCommand(fields)
	case "perft":
		return uci.perftCommand(fields)
	}
	return errors.New("command not found")
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Printf("id name %s %s\n", uci.name, uci.version)
	fmt.Printf("id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Println(option.UciString())
	}
	fmt.Println("uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	var valueIndex = findIndexString(fields, "value")
	if len(fields) == 0 || fields[0] != "name" {
		return nil
	}
	var name, value string
	if valueIndex == -1 {
		name = strings.Join(fields[1:], " ")
	} else {
		name = strings.Join(fields[1:valueIndex], " ")
		value = strings.Join(fields[valueIndex+1:], " ")
	}
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			if err := option.Set(value); err != nil {
				uci.logger.Println(err)
			}
			return nil
		}
	}
	// unknown options are accepted silently
	return nil
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	uci.engine.Prepare()
	fmt.Println("readyok")
	return nil
}

// positionCommand replaces the current position. Moves are applied in order;
// the first illegal token stops the replay and the position reached so far is
// kept.
func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("invalid position arguments")
	}
	var fen string
	var movesIndex = findIndexString(fields, "moves")
	if fields[0] == "startpos" {
		fen = common.InitialPositionFen
	} else if fields[0] == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(fields[1:], " ")
		} else {
			fen = strings.Join(fields[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []common.Position{p}
	if movesIndex >= 0 && movesIndex+1 < len(fields) {
		for _, smove := range fields[movesIndex+1:] {
			var newPos, ok = positions[len(positions)-1].MakeMoveLAN(smove)
			if !ok {
				break
			}
			positions = append(positions, newPos)
		}
	}
	uci.positions = positions
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	uci.thinking = true
	uci.engineOutput = make(chan common.SearchInfo, 16)
	uci.searchResult = make(chan common.SearchInfo, 1)

	var output = uci.engineOutput
	var result = uci.searchResult
	var params = common.SearchParams{
		Positions: uci.positions,
		Limits:    limits,
		Progress: func(si common.SearchInfo) {
			select {
			case output <- si:
			default:
			}
		},
	}
	go func() {
		result <- uci.engine.Search(params)
		close(output)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func (uci *Protocol) perftCommand(fields []string) error {
	var depth = 5
	if len(fields) != 0 {
		var v, err = strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		depth = v
	}
	if depth < 1 {
		return errors.New("invalid perft depth")
	}
	RunPerft(&uci.positions[len(uci.positions)-1], depth)
	return nil
}

func (uci *Protocol) printCommand(fields []string) error {
	var p = &uci.positions[len(uci.positions)-1]
	PrintPosition(p)
	fmt.Printf("info string FEN %v\n", p.String())
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	fmt.Fprintf(sb, " time %v nodes %v", timeMs, si.Nodes)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType) {
	var intArg = func(i int) int {
		if i >= len(args) {
			return 0
		}
		var v, _ = strconv.Atoi(args[i])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "wtime":
			result.WhiteTime = intArg(i + 1)
			i++
		case "btime":
			result.BlackTime = intArg(i + 1)
			i++
		case "winc":
			result.WhiteIncrement = intArg(i + 1)
			i++
		case "binc":
			result.BlackIncrement = intArg(i + 1)
			i++
		case "movestogo":
			result.MovesToGo = intArg(i + 1)
			i++
		case "movetime":
			result.MoveTime = intArg(i + 1)
			i++
		case "depth":
			result.Depth = intArg(i + 1)
			i++
		case "nodes":
			result.Nodes = intArg(i + 1)
			i++
		case "mate":
			result.Mate = intArg(i + 1)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
