package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/vesperchess/vesper/pkg/common"
	"github.com/vesperchess/vesper/pkg/engine"
	eval "github.com/vesperchess/vesper/pkg/eval/pesto"
	"github.com/vesperchess/vesper/pkg/uci"
)

const (
	name   = "Vesper"
	author = "the Vesper developers"
)

var versionName = "dev"

var (
	flgFen   string
	flgPerft int
)

func main() {
	flag.StringVar(&flgFen, "fen", common.InitialPositionFen, "position for one-shot commands")
	flag.IntVar(&flgPerft, "perft", 0, "run perft to the given depth and exit")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags)

	if flgPerft > 0 {
		var p, err = common.NewPositionFromFEN(flgFen)
		if err != nil {
			logger.Fatal(err)
		}
		uci.RunPerft(&p, flgPerft)
		return
	}

	logger.Println(name,
		"VersionName", versionName,
		"RuntimeVersion", runtime.Version(),
		"NumCPU", runtime.NumCPU(),
	)

	var eng = engine.NewEngine(func() engine.Evaluator {
		return eval.NewEvaluationService()
	})

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 4, Max: 1024, Value: &eng.Hash},
			&uci.IntOption{Name: "Threads", Min: 1, Max: runtime.NumCPU(), Value: &eng.Threads},
		},
	)
	protocol.Run(logger)
}
