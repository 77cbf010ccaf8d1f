package tchess

import (
	"strings"
)

// Move flags of the game template's 16-bit move encoding: bits 0-5 hold
// the source square, bits 6-11 the destination square and bits 12-15 one
// of these flags. Squares count from a1 = 0 to h8 = 63.
const (
	flagQuiet        uint16 = 0b0000
	flagDoublePawn   uint16 = 0b0001
	flagKingCastle   uint16 = 0b0010
	flagQueenCastle  uint16 = 0b0011
	flagCapture      uint16 = 0b0100
	flagEnPassant    uint16 = 0b0101
	flagPromo        uint16 = 0b1000
	flagPromoCapture uint16 = 0b1100
)

var promoPieces = map[byte]uint16{'n': 0, 'b': 1, 'r': 2, 'q': 3}

// Square is a board square, a1 = 0 through h8 = 63.
type Square uint8

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, false
	}
	return Square((s[1]-'1')*8 + (s[0] - 'a')), true
}

func (sq Square) file() int { return int(sq % 8) }
func (sq Square) rank() int { return int(sq / 8) }

func (sq Square) String() string {
	return string([]byte{'a' + byte(sq.file()), '1' + byte(sq.rank())})
}

// position is the part of a FEN record needed to classify a move.
type position struct {
	board     [64]byte
	enPassant int // -1 when none
}

func parseFEN(fen string) (*position, bool) {
	fields := strings.Fields(fen)
	if len(fields) < 1 {
		return nil, false
	}
	p := &position{enPassant: -1}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, false
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 || !strings.ContainsRune("pnbrqkPNBRQK", rune(c)) {
				return nil, false
			}
			p.board[rank*8+file] = c
			file++
		}
		if file != 8 {
			return nil, false
		}
	}
	if len(fields) > 3 && fields[3] != "-" {
		if sq, ok := ParseSquare(fields[3]); ok {
			p.enPassant = int(sq)
		}
	}
	return p, true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// EncodeMove encodes a move in coordinate notation ("e2e4", "e7e8q") for
// the board fen. The board is needed to pick the move's flag; legality is
// left to the game. Castling is given as the king's move ("e1g1") and is
// encoded with the rook's square as destination.
func EncodeMove(fen, move string) (uint16, error) {
	move = strings.ToLower(strings.TrimSpace(move))
	if len(move) != 4 && len(move) != 5 {
		return 0, &MoveError{Move: move, Reason: "expected coordinate notation such as e2e4"}
	}
	from, ok := ParseSquare(move[0:2])
	if !ok {
		return 0, &MoveError{Move: move, Reason: "invalid source square"}
	}
	to, ok := ParseSquare(move[2:4])
	if !ok {
		return 0, &MoveError{Move: move, Reason: "invalid destination square"}
	}
	if from == to {
		return 0, &MoveError{Move: move, Reason: "source equals destination"}
	}
	pos, ok := parseFEN(fen)
	if !ok {
		return 0, &MoveError{Move: move, Reason: "invalid board"}
	}

	piece := pos.board[from]
	if piece == 0 {
		return 0, &MoveError{Move: move, Reason: "no piece on " + from.String()}
	}
	target := pos.board[to]
	capture := target != 0

	if len(move) == 5 {
		promo, ok := promoPieces[move[4]]
		if !ok || lower(piece) != 'p' {
			return 0, &MoveError{Move: move, Reason: "invalid promotion"}
		}
		flag := flagPromo
		if capture {
			flag = flagPromoCapture
		}
		return encode(flag|promo, from, to), nil
	}

	switch lower(piece) {
	case 'k':
		if d := to.file() - from.file(); to.rank() == from.rank() && (d == 2 || d == -2) {
			if d > 0 {
				return encode(flagKingCastle, from, Square(from.rank()*8+7)), nil
			}
			return encode(flagQueenCastle, from, Square(from.rank()*8)), nil
		}
	case 'p':
		if d := to.rank() - from.rank(); to.file() == from.file() && (d == 2 || d == -2) {
			return encode(flagDoublePawn, from, to), nil
		}
		if !capture && to.file() != from.file() && int(to) == pos.enPassant {
			return encode(flagEnPassant, from, to), nil
		}
		if to.rank() == 0 || to.rank() == 7 {
			return 0, &MoveError{Move: move, Reason: "promotion piece required"}
		}
	}
	if capture {
		return encode(flagCapture, from, to), nil
	}
	return encode(flagQuiet, from, to), nil
}

func encode(flag uint16, from, to Square) uint16 {
	return flag<<12 | uint16(to)<<6 | uint16(from)
}

// DecodeMove renders an encoded move's squares and flag bits.
func DecodeMove(m uint16) (from, to Square, flags uint16) {
	return Square(m & 0x3f), Square((m >> 6) & 0x3f), m >> 12
}
