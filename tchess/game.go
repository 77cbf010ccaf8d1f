package tchess

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
	"github.com/branched-services/go-tariplan/valuetree"
)

// StartPosition is the board of a freshly created game.
const StartPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Player is a side of the board.
type Player int

const (
	White Player = iota
	Black
)

func (p Player) String() string {
	if p == Black {
		return "Black"
	}
	return "White"
}

// Other returns the opposing side.
func (p Player) Other() Player {
	return 1 - p
}

// OutcomeKind is how a finished game ended.
type OutcomeKind int

const (
	Checkmate OutcomeKind = iota + 1
	Resignation
	Stalemate
	Draw
)

var outcomeNames = map[string]OutcomeKind{
	"Checkmate":   Checkmate,
	"Resignation": Resignation,
	"Stalemate":   Stalemate,
	"Draw":        Draw,
}

func (k OutcomeKind) String() string {
	for name, kind := range outcomeNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of a finished game. Winner is set for checkmate
// and resignation.
type Outcome struct {
	Kind   OutcomeKind
	Winner *Player
}

// Game is a view of a game component's state.
type Game struct {
	Address     address.EntityAddress
	White       string
	Black       string
	Board       string
	Outcome     *Outcome
	PlayerBadge address.EntityAddress
}

// GameFromSubstate reads the game held by a component substate.
func GameFromSubstate(up *substate.UpSubstate) (*Game, error) {
	c, ok := up.Snapshot.(*substate.Component)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotGame, up.Address, up.Snapshot.Kind())
	}
	if c.State == nil {
		return nil, fmt.Errorf("%w: %s has no state", ErrNotGame, up.Address)
	}
	g, err := GameFromState(c.State)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", up.Address, err)
	}
	g.Address = up.Address
	return g, nil
}

// GameFromState decodes a game component's state value.
func GameFromState(state valuetree.Node) (*Game, error) {
	board, ok := valuetree.Lookup(state, "board_state")
	if !ok {
		return nil, fmt.Errorf("%w: missing board_state", ErrNotGame)
	}
	fen, ok := board.(string)
	if !ok {
		return nil, fmt.Errorf("%w: board_state is %T", ErrNotGame, board)
	}

	g := &Game{Board: fen}
	if v, ok := valuetree.Lookup(state, "white"); ok {
		g.White = renderID(v)
	}
	if v, ok := valuetree.Lookup(state, "black"); ok {
		g.Black = renderID(v)
	}
	if n, ok := valuetree.ResolvePath(state, "player_badge"); ok {
		if addr, ok := valuetree.Address(n); ok {
			g.PlayerBadge = addr
		}
	}
	if v, ok := valuetree.Lookup(state, "outcome"); ok && v != nil {
		out, err := parseOutcome(v)
		if err != nil {
			return nil, err
		}
		g.Outcome = out
	}
	return g, nil
}

// Over reports whether the game has an outcome.
func (g *Game) Over() bool {
	return g.Outcome != nil
}

// Turn returns the side to move.
func (g *Game) Turn() Player {
	fields := strings.Fields(g.Board)
	if len(fields) > 1 && fields[1] == "b" {
		return Black
	}
	return White
}

// PlayerOf returns the side a badge plays. The badge's token id is
// compared with the ids recorded in the game.
func (g *Game) PlayerOf(badge address.EntityAddress) (Player, bool) {
	switch badge.NonFungibleID {
	case "":
		return White, false
	case g.White:
		return White, true
	case g.Black:
		return Black, true
	}
	return White, false
}

// parseOutcome reads "Stalemate", "Draw" or {"Checkmate": "White"}.
func parseOutcome(v any) (*Outcome, error) {
	switch o := v.(type) {
	case string:
		kind, ok := outcomeNames[o]
		if !ok {
			return nil, fmt.Errorf("%w: unknown outcome %q", ErrNotGame, o)
		}
		return &Outcome{Kind: kind}, nil
	case map[string]any:
		for name, winner := range o {
			kind, ok := outcomeNames[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown outcome %q", ErrNotGame, name)
			}
			out := &Outcome{Kind: kind}
			switch winner {
			case "White":
				p := White
				out.Winner = &p
			case "Black":
				p := Black
				out.Winner = &p
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: outcome is %T", ErrNotGame, v)
}

// renderID renders a non-fungible id value the way token addresses carry
// it: {"U256": bytes} -> "u256_<hex>", {"String": s} -> "str_<s>",
// {"Uint32": n} -> "u32_<n>", {"Uint64": n} -> "u64_<n>".
func renderID(v any) string {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		if s, ok := v.(string); ok {
			return s
		}
		return ""
	}
	for variant, val := range m {
		switch variant {
		case "U256":
			if b, ok := val.([]byte); ok {
				return "u256_" + common.Bytes2Hex(b)
			}
		case "String":
			return fmt.Sprintf("str_%v", val)
		case "Uint32":
			return fmt.Sprintf("u32_%v", val)
		case "Uint64":
			return fmt.Sprintf("u64_%v", val)
		}
	}
	return ""
}

// Opponents returns the badges in records that belong to the same resource
// as player, excluding player itself.
func Opponents(records []address.EntityAddress, player address.EntityAddress) []address.EntityAddress {
	res, ok := address.ResourceOf(player)
	if !ok {
		return nil
	}
	var out []address.EntityAddress
	for _, r := range records {
		if r.Equal(player) {
			continue
		}
		if other, ok := address.ResourceOf(r); ok && other.Equal(res) {
			out = append(out, r)
		}
	}
	return out
}
