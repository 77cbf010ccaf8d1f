// Command tchessctl creates tchess leagues and games and plays moves through
// a wallet daemon.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/branched-services/go-tariplan/tchess"
	"github.com/branched-services/go-tariplan/wallet"
)

var (
	ConfigFlag = cli.StringFlag{
		Name:    "config",
		Usage:   "Path of the TOML configuration file",
		Value:   "tchess.toml",
		EnvVars: []string{"TCHESS_CONFIG"},
	}
	WalletURLFlag = cli.StringFlag{
		Name:    "wallet-url",
		Usage:   "Wallet daemon JSON-RPC endpoint",
		EnvVars: []string{"TCHESS_WALLET_URL"},
	}
	TokenFlag = cli.StringFlag{
		Name:    "token",
		Usage:   "Wallet daemon auth token",
		EnvVars: []string{"TCHESS_TOKEN"},
	}
	FeeFlag = cli.Int64Flag{
		Name:    "fee",
		Usage:   "Fee reserved by every transaction",
		EnvVars: []string{"TCHESS_FEE"},
	}
	LeagueFlag = cli.StringFlag{
		Name:    "league",
		Usage:   "League component address",
		EnvVars: []string{"TCHESS_LEAGUE"},
	}
	BadgeFlag = cli.StringFlag{
		Name:    "badge",
		Usage:   "Player badge address",
		EnvVars: []string{"TCHESS_BADGE"},
	}
	VerboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log at debug level in development format",
	}
)

func main() {
	app := newApp()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tchessctl"
	app.Usage = "play tchess through a wallet daemon"
	app.UsageText = app.Name + ` [flags] [command] [arguments]`

	app.Flags = []cli.Flag{
		&ConfigFlag,
		&WalletURLFlag,
		&TokenFlag,
		&FeeFlag,
		&LeagueFlag,
		&BadgeFlag,
		&VerboseFlag,
	}
	app.Commands = []*cli.Command{
		&accountCommand,
		&leagueCommand,
		&registerCommand,
		&gameCommand,
		&moveCommand,
		&resignCommand,
		&claimCommand,
		&opponentsCommand,
	}
	return app
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

// session is the per-invocation state shared by commands.
type session struct {
	cfg     Config
	cfgPath string
	logger  *zap.Logger
	wallet  *wallet.Client
	game    *tchess.Client
}

func openSession(c *cli.Context) (*session, error) {
	cfgPath := c.String(ConfigFlag.Name)
	cfg, err := loadConfig(cfgPath, c.IsSet(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg, c)

	logger, err := newLogger(c.Bool(VerboseFlag.Name))
	if err != nil {
		return nil, err
	}
	poll, err := cfg.pollInterval()
	if err != nil {
		return nil, err
	}

	client, err := wallet.Dial(c.Context, cfg.WalletURL,
		wallet.WithAuthToken(cfg.Token),
		wallet.WithClientLogger(logger.Named("wallet")))
	if err != nil {
		return nil, err
	}
	pipeline := wallet.NewPipeline(client,
		wallet.WithLogger(logger.Named("pipeline")),
		wallet.WithPollInterval(poll))

	return &session{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		wallet:  client,
		game:    tchess.NewClient(pipeline, client, tchess.WithSequences(cfg.sequences()), tchess.WithLogger(logger.Named("tchess"))),
	}, nil
}

func (s *session) close() {
	s.wallet.Close()
	_ = s.logger.Sync()
}

// remember persists a created entity in the configuration file.
func (s *session) remember(update func(*Config)) {
	update(&s.cfg)
	if s.cfgPath == "" {
		return
	}
	stored, err := loadConfig(s.cfgPath, false)
	if err != nil {
		s.logger.Warn("config not updated", zap.Error(err))
		return
	}
	update(&stored)
	if err := saveConfig(s.cfgPath, stored); err != nil {
		s.logger.Warn("config not updated", zap.Error(err))
	}
}

// withSession wraps a command action with session setup.
func withSession(action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer s.close()
		return action(c, s)
	}
}
