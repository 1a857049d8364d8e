package uci

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vesperchess/vesper/pkg/common"
)

// RunPerft counts move-generation leaves per root move and prints a grouped
// total, for validating the primitives against published perft tables.
func RunPerft(p *common.Position, depth int) {
	var printer = message.NewPrinter(language.English)
	var start = time.Now()
	var total int64
	var child common.Position
	for _, move := range p.GenerateLegalMoves() {
		p.MakeMove(move, &child)
		var nodes = int64(1)
		if depth > 1 {
			nodes = common.Perft(&child, depth-1)
		}
		total += nodes
		printer.Printf("%v: %v\n", move, nodes)
	}
	printer.Printf("perft(%d) = %v (%v)\n", depth, total, time.Since(start).Round(time.Millisecond))
}
