package uci

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/vesperchess/vesper/pkg/common"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestParseLimits(t *testing.T) {
	var limits = parseLimits(strings.Fields("wtime 300000 btime 300000 winc 2000 binc 2000 movestogo 40"))
	if limits.WhiteTime != 300000 || limits.BlackTime != 300000 ||
		limits.WhiteIncrement != 2000 || limits.BlackIncrement != 2000 ||
		limits.MovesToGo != 40 {
		t.Error(limits)
	}

	limits = parseLimits(strings.Fields("depth 6"))
	if limits.Depth != 6 {
		t.Error(limits)
	}

	limits = parseLimits(strings.Fields("movetime 100"))
	if limits.MoveTime != 100 {
		t.Error(limits)
	}

	limits = parseLimits(strings.Fields("infinite"))
	if !limits.Infinite {
		t.Error(limits)
	}

	// Truncated input must not panic.
	limits = parseLimits(strings.Fields("wtime"))
	if limits.WhiteTime != 0 {
		t.Error(limits)
	}
}

func TestPositionCommand(t *testing.T) {
	var uci = New("test", "test", "dev", nil, nil)

	if err := uci.positionCommand(strings.Fields("startpos moves e2e4 e7e5")); err != nil {
		t.Fatal(err)
	}
	var p = uci.positions[len(uci.positions)-1]
	if !strings.HasPrefix(p.String(), "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w") {
		t.Error(p.String())
	}

	var fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	if err := uci.positionCommand(strings.Fields("fen " + fen)); err != nil {
		t.Fatal(err)
	}
	p = uci.positions[len(uci.positions)-1]
	if !strings.HasPrefix(p.String(), "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w") {
		t.Error(p.String())
	}

	// Illegal tokens stop the replay; the position reached so far is kept.
	if err := uci.positionCommand(strings.Fields("startpos moves e2e4 e2e4 e7e5")); err != nil {
		t.Fatal(err)
	}
	p = uci.positions[len(uci.positions)-1]
	if !strings.HasPrefix(p.String(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b") {
		t.Error(p.String())
	}
}

func TestSetOptionCommand(t *testing.T) {
	var threads = 1
	var uci = New("test", "test", "dev", nil, []Option{
		&IntOption{Name: "Threads", Min: 1, Max: 8, Value: &threads},
	})
	uci.logger = testLogger()

	if err := uci.setOptionCommand(strings.Fields("name Threads value 4")); err != nil {
		t.Fatal(err)
	}
	if threads != 4 {
		t.Error(threads)
	}

	// Out-of-range values clamp.
	if err := uci.setOptionCommand(strings.Fields("name Threads value 99")); err != nil {
		t.Fatal(err)
	}
	if threads != 8 {
		t.Error(threads)
	}
	if err := uci.setOptionCommand(strings.Fields("name Threads value 0")); err != nil {
		t.Fatal(err)
	}
	if threads != 1 {
		t.Error(threads)
	}

	// Unknown options are accepted silently.
	if err := uci.setOptionCommand(strings.Fields("name Ponder value true")); err != nil {
		t.Error(err)
	}
}

func TestPerftCommand(t *testing.T) {
	var uci = New("test", "test", "dev", nil, nil)
	if err := uci.perftCommand([]string{"2"}); err != nil {
		t.Error(err)
	}
	if err := uci.perftCommand([]string{"x"}); err == nil {
		t.Error("bad depth accepted")
	}
	if err := uci.perftCommand([]string{"0"}); err == nil {
		t.Error("zero depth accepted")
	}
}

func TestUciScoreOutput(t *testing.T) {
	var si = common.SearchInfo{
		Depth: 3,
		Score: common.UciScore{Centipawns: 34},
	}
	var line = searchInfoToUci(si)
	if !strings.HasPrefix(line, "info depth 3 score cp 34") {
		t.Error(line)
	}
	si.Score = common.UciScore{Mate: 2}
	line = searchInfoToUci(si)
	if !strings.Contains(line, "score mate 2") {
		t.Error(line)
	}
}
