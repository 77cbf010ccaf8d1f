package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/tchess"
	"github.com/branched-services/go-tariplan/wallet"
)

var (
	accountCommand = cli.Command{
		Action: withSession(doAccount),
		Name:   "account",
		Usage:  "Show the wallet's default account",
	}
	leagueCommand = cli.Command{
		Name:  "league",
		Usage: "Manage leagues",
		Subcommands: []*cli.Command{
			{
				Action: withSession(doNewLeague),
				Name:   "new",
				Usage:  "Create a league and remember its address",
			},
		},
	}
	registerCommand = cli.Command{
		Action: withSession(doRegister),
		Name:   "register",
		Usage:  "Register in the league and remember the player badge",
	}
	gameCommand = cli.Command{
		Name:  "game",
		Usage: "Create and inspect games",
		Subcommands: []*cli.Command{
			{
				Action:    withSession(doNewGame),
				Name:      "new",
				Usage:     "Start a game between two badges held by the account",
				ArgsUsage: "<white badge> <black badge>",
			},
			{
				Action:    withSession(doShowGame),
				Name:      "show",
				Usage:     "Print a game's board and state",
				ArgsUsage: "<game>",
			},
		},
	}
	moveCommand = cli.Command{
		Action:    withSession(doMove),
		Name:      "move",
		Usage:     "Play a move in coordinate notation, e.g. e2e4 or a7a8q",
		ArgsUsage: "<game> <move>",
	}
	resignCommand = cli.Command{
		Action:    withSession(doResign),
		Name:      "resign",
		Usage:     "Resign a game",
		ArgsUsage: "<game>",
	}
	claimCommand = cli.Command{
		Action:    withSession(doClaim),
		Name:      "claim",
		Usage:     "Claim the reward of a won game",
		ArgsUsage: "<game>",
	}
	opponentsCommand = cli.Command{
		Action: withSession(doOpponents),
		Name:   "opponents",
		Usage:  "List the other players of the badge's league",
	}
)

// args parses n address arguments.
func args(c *cli.Context, n int) ([]address.EntityAddress, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", c.Command.Name, n, c.NArg())
	}
	out := make([]address.EntityAddress, n)
	for i := range out {
		a, err := address.Parse(c.Args().Get(i))
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func account(c *cli.Context, s *session) (wallet.Account, error) {
	a, err := s.wallet.DefaultAccount(c.Context)
	if err != nil {
		return wallet.Account{}, fmt.Errorf("default account: %w", err)
	}
	return *a, nil
}

func doAccount(c *cli.Context, s *session) error {
	a, err := account(c, s)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (key %d)\n", a.Name, a.Address, a.KeyIndex)
	return nil
}

func doNewLeague(c *cli.Context, s *session) error {
	a, err := account(c, s)
	if err != nil {
		return err
	}
	league, err := s.game.CreateLeague(c.Context, a)
	if err != nil {
		return err
	}
	s.remember(func(cfg *Config) { cfg.League = league.String() })
	fmt.Println(league)
	return nil
}

func doRegister(c *cli.Context, s *session) error {
	league, err := s.cfg.league()
	if err != nil {
		return err
	}
	a, err := account(c, s)
	if err != nil {
		return err
	}
	badge, err := s.game.RegisterPlayer(c.Context, a, league)
	if err != nil {
		return err
	}
	s.remember(func(cfg *Config) { cfg.Badge = badge.String() })
	fmt.Println(badge)
	return nil
}

func doNewGame(c *cli.Context, s *session) error {
	badges, err := args(c, 2)
	if err != nil {
		return err
	}
	league, err := s.cfg.league()
	if err != nil {
		return err
	}
	a, err := account(c, s)
	if err != nil {
		return err
	}
	game, err := s.game.StartGame(c.Context, a, league, badges[0], badges[1])
	if err != nil {
		return err
	}
	fmt.Println(game)
	return nil
}

func doShowGame(c *cli.Context, s *session) error {
	game, err := args(c, 1)
	if err != nil {
		return err
	}
	g, err := s.game.LoadGame(c.Context, game[0])
	if err != nil {
		return err
	}
	fmt.Print(describe(g))
	return nil
}

func describe(g *tchess.Game) string {
	out := fmt.Sprintf("game   %s\nwhite  %s\nblack  %s\nboard  %s\n", g.Address, g.White, g.Black, g.Board)
	switch {
	case !g.Over():
		out += fmt.Sprintf("turn   %s\n", g.Turn())
	case g.Outcome.Winner != nil:
		out += fmt.Sprintf("result %s, %s wins\n", g.Outcome.Kind, *g.Outcome.Winner)
	default:
		out += fmt.Sprintf("result %s\n", g.Outcome.Kind)
	}
	return out
}

func doMove(c *cli.Context, s *session) error {
	if c.NArg() != 2 {
		return fmt.Errorf("move: expected 2 arguments, got %d", c.NArg())
	}
	game, err := address.Parse(c.Args().Get(0))
	if err != nil {
		return err
	}
	badge, err := s.cfg.badge()
	if err != nil {
		return err
	}
	a, err := account(c, s)
	if err != nil {
		return err
	}
	return s.game.Move(c.Context, a, game, badge, c.Args().Get(1))
}

func doResign(c *cli.Context, s *session) error {
	game, err := args(c, 1)
	if err != nil {
		return err
	}
	badge, err := s.cfg.badge()
	if err != nil {
		return err
	}
	a, err := account(c, s)
	if err != nil {
		return err
	}
	return s.game.Resign(c.Context, a, game[0], badge)
}

func doClaim(c *cli.Context, s *session) error {
	game, err := args(c, 1)
	if err != nil {
		return err
	}
	league, err := s.cfg.league()
	if err != nil {
		return err
	}
	badge, err := s.cfg.badge()
	if err != nil {
		return err
	}
	a, err := account(c, s)
	if err != nil {
		return err
	}
	return s.game.ClaimReward(c.Context, a, league, game[0], badge)
}

func doOpponents(c *cli.Context, s *session) error {
	badge, err := s.cfg.badge()
	if err != nil {
		return err
	}
	opponents, err := s.game.ListOpponents(c.Context, badge)
	if err != nil {
		return err
	}
	for _, o := range opponents {
		fmt.Println(o)
	}
	return nil
}
