package boardfmt

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/types"
)

const squareSize = 60

var pieceGlyphs = [12]string{
	"♙", "♘", "♗", "♖", "♕", "♔",
	"♟", "♞", "♝", "♜", "♛", "♚",
}

var lightSquare = "fill:#f0d9b5"
var darkSquare = "fill:#b58863"

// WriteSVG renders b as an eight-by-eight board diagram, writing the SVG
// document to w. Useful for producing position diagrams for documentation
// or a web front end without shelling out to an external renderer.
func WriteSVG(w io.Writer, b *board.Board) {
	canvas := svg.New(w)
	size := squareSize * 8
	canvas.Start(size, size)

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			x := file * squareSize
			// Rank 8 is drawn at the top of the image.
			y := (7 - rank) * squareSize

			style := lightSquare
			if (rank+file)%2 == 0 {
				style = darkSquare
			}
			canvas.Rect(x, y, squareSize, squareSize, style)

			square := uint64(1) << (8*rank + file)
			for piece := types.PieceWPawn; piece <= types.PieceBKing; piece++ {
				if b.Bitboards[piece]&square == 0 {
					continue
				}
				canvas.Text(x+squareSize/2, y+squareSize*2/3, pieceGlyphs[piece],
					"text-anchor:middle;font-size:36px")
				break
			}
		}
	}

	canvas.End()
}
