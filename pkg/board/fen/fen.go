// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/me-unsolicited/gochess/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a position. All six fields are required; see spec.md §6.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	pieces, err := parsePlacement(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid placement in FEN %q: %w", fen, err)
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling availability in FEN: %q", fen)
	}

	var ep board.Square
	var hasEP bool
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant target in FEN %q: %w", fen, err)
		}
		ep, hasEP = sq, true
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", fen)
	}

	pos, err := board.NewPosition(pieces, turn, castling, ep, hasEP, halfmove, fullmove)
	if err != nil {
		return nil, fmt.Errorf("invalid position in FEN %q: %w", fen, err)
	}
	return pos, nil
}

// parsePlacement parses field (1): ranks 8 down to 1, each rank's squares described from file a
// through file h, digits denoting consecutive empty squares.
func parsePlacement(field string) ([]board.Placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %v", len(ranks))
	}

	var pieces []board.Placement
	for i, rankStr := range ranks {
		rank := board.Rank(7 - i)
		file := board.ZeroFile

		for _, r := range rankStr {
			switch {
			case unicode.IsDigit(r):
				file += board.File(r - '0')
			case unicode.IsLetter(r):
				if file >= board.NumFiles {
					return nil, fmt.Errorf("rank %v overflows the board", rank)
				}
				color, piece, ok := parsePiece(r)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q", r)
				}
				pieces = append(pieces, board.Placement{Square: board.NewSquare(file, rank), Color: color, Piece: piece})
				file++
			default:
				return nil, fmt.Errorf("invalid character %q", r)
			}
		}
		if file != board.NumFiles {
			return nil, fmt.Errorf("rank %v does not cover all 8 files", rank)
		}
	}
	return pieces, nil
}

// Encode renders a position as a FEN record.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		rank := board.Rank(7 - i)
		blanks := 0
		for file := board.ZeroFile; file < board.NumFiles; file++ {
			color, piece, ok := pos.At(board.NewSquare(file, rank))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < 7 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.Turn()), printCastling(pos.Castling()), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

func parseCastling(str string) (board.CastleRights, bool) {
	var ret board.CastleRights
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSide
		case 'Q':
			ret |= board.WhiteQueenSide
		case 'k':
			ret |= board.BlackKingSide
		case 'q':
			ret |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.CastleRights) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	color := board.White
	if unicode.IsLower(r) {
		color = board.Black
	}
	piece, ok := board.ParsePiece(unicode.ToLower(r))
	return color, piece, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
