// Package tchess builds and submits the operation sequences of the tchess
// league and game templates, and reads game state back from the ledger.
package tchess

import (
	"fmt"

	"github.com/branched-services/go-tariplan"
	"github.com/branched-services/go-tariplan/address"
)

// Published template addresses.
const (
	GameTemplate   address.TemplateAddress = "ad7eee34e6e373613fb7bd0e51a9d49f425ae6e9b54fa8da7bc8cd20dcf5a425"
	LeagueTemplate address.TemplateAddress = "79f6481ed578b7811b594a3132ab6801d4f81fb88064d9966c4b6cf341f9b11a"
)

// DefaultFee is the fee reserved by every sequence.
const DefaultFee int64 = 2000

// Account and template method names.
const (
	methodDeposit     = "deposit"
	methodCreateProof = "create_proof_by_non_fungible_ids"
	methodCreateUser  = "create_user"
	methodCreateGame  = "create_game"
	methodClaimReward = "claim_reward"
	methodMakeMove    = "make_move"
	methodResign      = "resign"
	functionNew       = "new"
)

// Workspace names used by the sequences.
const (
	varPlayerNFT  = "player_nft"
	varWhiteProof = "white_proof"
	varBlackProof = "black_proof"
	varProof      = "proof"
	varReward     = "reward"
)

// Sequences builds tchess sequences for a pair of templates.
type Sequences struct {
	Fee            int64
	GameTemplate   address.TemplateAddress
	LeagueTemplate address.TemplateAddress
}

// Default builds sequences against the published templates.
var Default = Sequences{
	Fee:            DefaultFee,
	GameTemplate:   GameTemplate,
	LeagueTemplate: LeagueTemplate,
}

func (s Sequences) start(account address.EntityAddress) *tariplan.Sequence {
	return tariplan.New().ReserveFee(account, s.Fee)
}

// NewLeague instantiates a league that creates games from GameTemplate.
func (s Sequences) NewLeague(account address.EntityAddress) (*tariplan.UnsignedSequence, error) {
	return s.start(account).
		CallFunction(s.LeagueTemplate, functionNew, tariplan.Template(s.GameTemplate)).
		Build()
}

// Register mints a player badge in league and deposits it into account.
func (s Sequences) Register(account, league address.EntityAddress) (*tariplan.UnsignedSequence, error) {
	return s.start(account).
		CallMethod(league, methodCreateUser).
		SaveResult(varPlayerNFT).
		CallMethod(account, methodDeposit, tariplan.WorkspaceRef(varPlayerNFT)).
		Build()
}

// CreateGame starts a game in league between the holders of two badges.
// Proofs of both badges are created from account, which must hold them.
func (s Sequences) CreateGame(account, league, white, black address.EntityAddress) (*tariplan.UnsignedSequence, error) {
	whiteRes, err := badgeResource(white)
	if err != nil {
		return nil, err
	}
	blackRes, err := badgeResource(black)
	if err != nil {
		return nil, err
	}
	if !whiteRes.Equal(blackRes) {
		return nil, ErrBadgeMismatch
	}

	seq := s.start(account)
	whiteProof := seq.Bind(proofCall(account, white, whiteRes), varWhiteProof)
	blackProof := seq.Bind(proofCall(account, black, blackRes), varBlackProof)
	return seq.
		CallMethod(league, methodCreateGame, whiteProof, blackProof).
		Build()
}

// MakeMove plays an encoded move in game, proving ownership of badge.
func (s Sequences) MakeMove(account, game, badge address.EntityAddress, move uint16) (*tariplan.UnsignedSequence, error) {
	seq, proof, err := s.withProof(account, badge)
	if err != nil {
		return nil, err
	}
	return seq.CallMethod(game, methodMakeMove, proof, move).Build()
}

// Resign concedes game on behalf of badge.
func (s Sequences) Resign(account, game, badge address.EntityAddress) (*tariplan.UnsignedSequence, error) {
	seq, proof, err := s.withProof(account, badge)
	if err != nil {
		return nil, err
	}
	return seq.CallMethod(game, methodResign, proof).Build()
}

// ClaimReward claims the league's reward for winning game and deposits it
// into account.
func (s Sequences) ClaimReward(account, league, game, badge address.EntityAddress) (*tariplan.UnsignedSequence, error) {
	seq, proof, err := s.withProof(account, badge)
	if err != nil {
		return nil, err
	}
	return seq.
		CallMethod(league, methodClaimReward, proof, tariplan.Address(game)).
		SaveResult(varReward).
		CallMethod(account, methodDeposit, tariplan.WorkspaceRef(varReward)).
		Build()
}

func (s Sequences) withProof(account, badge address.EntityAddress) (*tariplan.Sequence, *tariplan.WorkspaceArg, error) {
	res, err := badgeResource(badge)
	if err != nil {
		return nil, nil, err
	}
	seq := s.start(account)
	proof := seq.Bind(proofCall(account, badge, res), varProof)
	return seq, proof, nil
}

func proofCall(account, badge, resource address.EntityAddress) *tariplan.Call {
	return tariplan.NewComponent(account).Method(methodCreateProof,
		tariplan.Address(resource),
		[]string{badge.NonFungibleID},
	)
}

func badgeResource(badge address.EntityAddress) (address.EntityAddress, error) {
	if badge.NonFungibleID == "" {
		return address.EntityAddress{}, fmt.Errorf("%w: %s", ErrInvalidBadge, badge)
	}
	res, ok := address.ResourceOf(badge)
	if !ok {
		return address.EntityAddress{}, fmt.Errorf("%w: %s", ErrInvalidBadge, badge)
	}
	return res, nil
}
