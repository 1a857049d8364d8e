package uci

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/vesperchess/vesper/pkg/common"
)

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

var (
	darkSquare  = color.New(color.FgBlack, color.BgWhite)
	lightSquare = color.New(color.FgBlack, color.BgHiWhite)
)

// PrintPosition renders the board from white's point of view, rank 8 on top.
func PrintPosition(p *common.Position) {
	for i := 0; i < 64; i++ {
		var sq = common.FlipSquare(i)
		var piece, side = p.GetPieceTypeAndSide(sq)
		var symbol = chessSymbols[common.SideIndex(side)][piece] + " "
		if common.IsDarkSquare(sq) {
			darkSquare.Print(symbol)
		} else {
			lightSquare.Print(symbol)
		}
		if common.File(sq) == common.FileH {
			fmt.Println()
		}
	}
}
