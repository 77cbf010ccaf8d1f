package tchess

import (
	"context"

	"go.uber.org/zap"

	"github.com/branched-services/go-tariplan"
	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
	"github.com/branched-services/go-tariplan/wallet"
)

// Submitter submits built sequences and returns the accepted diff.
// *wallet.Pipeline implements it.
type Submitter interface {
	Submit(ctx context.Context, seq *tariplan.UnsignedSequence, account wallet.Account, required []address.EntityAddress) (*substate.Diff, error)
}

// SubstateReader reads ledger state through the wallet.
// *wallet.Client implements it.
type SubstateReader interface {
	GetSubstate(ctx context.Context, addr address.EntityAddress) (*substate.UpSubstate, error)
	ListSubstates(ctx context.Context, filter wallet.ListFilter) ([]wallet.SubstateRecord, error)
}

// Option configures a Client.
type Option func(*Client)

// WithSequences replaces the default fee and templates.
func WithSequences(s Sequences) Option {
	return func(c *Client) {
		c.seq = s
	}
}

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client runs the league and game flows for one wallet.
type Client struct {
	submitter Submitter
	reader    SubstateReader
	seq       Sequences
	logger    *zap.Logger
}

// NewClient creates a Client. reader may be nil when only submitting.
func NewClient(submitter Submitter, reader SubstateReader, opts ...Option) *Client {
	c := &Client{
		submitter: submitter,
		reader:    reader,
		seq:       Default,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sequences returns the builder the client submits with.
func (c *Client) Sequences() Sequences {
	return c.seq
}

func (c *Client) submit(ctx context.Context, seq *tariplan.UnsignedSequence, account wallet.Account, required ...address.EntityAddress) (*substate.Diff, error) {
	return c.submitter.Submit(ctx, seq, account, required)
}

// CreateLeague instantiates a league and returns its address.
func (c *Client) CreateLeague(ctx context.Context, account wallet.Account) (address.EntityAddress, error) {
	seq, err := c.seq.NewLeague(account.Address)
	if err != nil {
		return address.EntityAddress{}, err
	}
	diff, err := c.submit(ctx, seq, account)
	if err != nil {
		return address.EntityAddress{}, err
	}
	up, ok := substate.FindComponentByTemplate(diff, c.seq.LeagueTemplate)
	if !ok {
		return address.EntityAddress{}, &NotCreatedError{What: "league"}
	}
	c.logger.Info("league created", zap.Stringer("league", up.Address))
	return up.Address, nil
}

// RegisterPlayer mints a player badge and returns its address.
func (c *Client) RegisterPlayer(ctx context.Context, account wallet.Account, league address.EntityAddress) (address.EntityAddress, error) {
	seq, err := c.seq.Register(account.Address, league)
	if err != nil {
		return address.EntityAddress{}, err
	}
	diff, err := c.submit(ctx, seq, account, league)
	if err != nil {
		return address.EntityAddress{}, err
	}
	up, ok := substate.FindFirstByKind(diff, address.NonFungible)
	if !ok {
		return address.EntityAddress{}, &NotCreatedError{What: "player badge"}
	}
	c.logger.Info("player registered", zap.Stringer("badge", up.Address))
	return up.Address, nil
}

// StartGame creates a game between two badges and returns its address.
func (c *Client) StartGame(ctx context.Context, account wallet.Account, league, white, black address.EntityAddress) (address.EntityAddress, error) {
	seq, err := c.seq.CreateGame(account.Address, league, white, black)
	if err != nil {
		return address.EntityAddress{}, err
	}
	diff, err := c.submit(ctx, seq, account, league)
	if err != nil {
		return address.EntityAddress{}, err
	}
	up, ok := substate.FindComponentByTemplate(diff, c.seq.GameTemplate)
	if !ok {
		return address.EntityAddress{}, &NotCreatedError{What: "game"}
	}
	c.logger.Info("game started",
		zap.Stringer("game", up.Address),
		zap.String("white", address.AbbreviateDefault(white)),
		zap.String("black", address.AbbreviateDefault(black)))
	return up.Address, nil
}

// Move plays move, in coordinate notation, in game. The current board is
// read first to encode the move.
func (c *Client) Move(ctx context.Context, account wallet.Account, game, badge address.EntityAddress, move string) error {
	g, err := c.LoadGame(ctx, game)
	if err != nil {
		return err
	}
	encoded, err := EncodeMove(g.Board, move)
	if err != nil {
		return err
	}
	seq, err := c.seq.MakeMove(account.Address, game, badge, encoded)
	if err != nil {
		return err
	}
	if _, err := c.submit(ctx, seq, account, game); err != nil {
		return err
	}
	c.logger.Info("move played", zap.Stringer("game", game), zap.String("move", move))
	return nil
}

// Resign concedes game.
func (c *Client) Resign(ctx context.Context, account wallet.Account, game, badge address.EntityAddress) error {
	seq, err := c.seq.Resign(account.Address, game, badge)
	if err != nil {
		return err
	}
	_, err = c.submit(ctx, seq, account, game)
	return err
}

// ClaimReward claims the reward for winning game.
func (c *Client) ClaimReward(ctx context.Context, account wallet.Account, league, game, badge address.EntityAddress) error {
	seq, err := c.seq.ClaimReward(account.Address, league, game, badge)
	if err != nil {
		return err
	}
	_, err = c.submit(ctx, seq, account, league, game)
	return err
}

// LoadGame reads the current state of game.
func (c *Client) LoadGame(ctx context.Context, game address.EntityAddress) (*Game, error) {
	up, err := c.reader.GetSubstate(ctx, game)
	if err != nil {
		return nil, err
	}
	return GameFromSubstate(up)
}

// ListOpponents lists the badges of other players of player's league.
func (c *Client) ListOpponents(ctx context.Context, player address.EntityAddress) ([]address.EntityAddress, error) {
	records, err := c.reader.ListSubstates(ctx, wallet.ListFilter{Kind: address.NonFungible.String()})
	if err != nil {
		return nil, err
	}
	addrs := make([]address.EntityAddress, 0, len(records))
	for _, r := range records {
		addrs = append(addrs, r.Address)
	}
	return Opponents(addrs, player), nil
}
