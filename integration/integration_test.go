package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
	"github.com/branched-services/go-tariplan/tchess"
	"github.com/branched-services/go-tariplan/wallet"
)

const defaultWalletURL = "http://127.0.0.1:9000/json_rpc"

// setup connects to the wallet daemon named by TCHESS_WALLET_URL. The
// daemon's default account must hold enough funds for a few transactions.
func setup(t *testing.T) (*wallet.Client, *tchess.Client, wallet.Account) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("Set INTEGRATION_TEST=1 to run integration tests")
	}
	url := os.Getenv("TCHESS_WALLET_URL")
	if url == "" {
		url = defaultWalletURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := zaptest.NewLogger(t)
	client, err := wallet.Dial(ctx, url,
		wallet.WithAuthToken(os.Getenv("TCHESS_TOKEN")),
		wallet.WithClientLogger(logger))
	if err != nil {
		t.Fatalf("Failed to connect to wallet daemon: %v", err)
	}
	t.Cleanup(client.Close)

	account, err := client.DefaultAccount(ctx)
	if err != nil {
		t.Fatalf("Failed to get default account: %v", err)
	}
	t.Logf("Using account %s (%s)", account.Name, address.AbbreviateDefault(account.Address))

	pipeline := wallet.NewPipeline(client, wallet.WithLogger(logger))
	return client, tchess.NewClient(pipeline, client, tchess.WithLogger(logger)), *account
}

func TestLeagueGameFlow(t *testing.T) {
	_, chess, account := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	league, err := chess.CreateLeague(ctx, account)
	if err != nil {
		t.Fatalf("Failed to create league: %v", err)
	}
	t.Logf("League created at: %s", league)

	white, err := chess.RegisterPlayer(ctx, account, league)
	if err != nil {
		t.Fatalf("Failed to register white: %v", err)
	}
	black, err := chess.RegisterPlayer(ctx, account, league)
	if err != nil {
		t.Fatalf("Failed to register black: %v", err)
	}
	t.Logf("Players: %s vs %s", white, black)

	opponents, err := chess.ListOpponents(ctx, white)
	if err != nil {
		t.Fatalf("Failed to list opponents: %v", err)
	}
	if !contains(opponents, black) {
		t.Errorf("black should be listed as an opponent of white, got %v", opponents)
	}

	game, err := chess.StartGame(ctx, account, league, white, black)
	if err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}
	t.Logf("Game started at: %s", game)

	if err := chess.Move(ctx, account, game, white, "e2e4"); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	g, err := chess.LoadGame(ctx, game)
	if err != nil {
		t.Fatalf("Failed to load game: %v", err)
	}
	if g.Turn() != tchess.Black {
		t.Errorf("Expected black to move after e2e4, board %s", g.Board)
	}

	if err := chess.Resign(ctx, account, game, black); err != nil {
		t.Fatalf("Failed to resign: %v", err)
	}
	g, err = chess.LoadGame(ctx, game)
	if err != nil {
		t.Fatalf("Failed to load game: %v", err)
	}
	if !g.Over() || g.Outcome.Kind != tchess.Resignation || g.Outcome.Winner == nil || *g.Outcome.Winner != tchess.White {
		t.Fatalf("Expected white to win by resignation, got %+v", g.Outcome)
	}

	if err := chess.ClaimReward(ctx, account, league, game, white); err != nil {
		t.Fatalf("Failed to claim reward: %v", err)
	}

	err = chess.ClaimReward(ctx, account, league, game, white)
	if !errors.Is(err, wallet.ErrSubmissionRejected) {
		t.Fatalf("Expected a second claim to be rejected, got %v", err)
	}
	var rejected *wallet.RejectedError
	if errors.As(err, &rejected) {
		t.Logf("Second claim rejected as expected: %s", rejected.Reason)
	}
}

func TestGetSubstate(t *testing.T) {
	client, chess, account := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	league, err := chess.CreateLeague(ctx, account)
	if err != nil {
		t.Fatalf("Failed to create league: %v", err)
	}

	up, err := client.GetSubstate(ctx, league)
	if err != nil {
		t.Fatalf("Failed to get substate: %v", err)
	}
	c, ok := up.Snapshot.(*substate.Component)
	if !ok {
		t.Fatalf("Expected a component, got %T", up.Snapshot)
	}
	if c.TemplateAddress != chess.Sequences().LeagueTemplate {
		t.Errorf("Expected league template, got %s", c.TemplateAddress)
	}
}

func contains(list []address.EntityAddress, a address.EntityAddress) bool {
	for _, b := range list {
		if b.Equal(a) {
			return true
		}
	}
	return false
}
