package bot

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsentry/sentry-go"
	"github.com/sweeper-bot/sweeper/actionlog"
	"github.com/sweeper-bot/sweeper/bot"
	"github.com/sweeper-bot/sweeper/cache"
	"github.com/sweeper-bot/sweeper/common"
	"github.com/sweeper-bot/sweeper/common/log"
	"github.com/sweeper-bot/sweeper/menu"
	"github.com/sweeper-bot/sweeper/server"
	"github.com/sweeper-bot/sweeper/sweep"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the configuration file",
			Value: "config.toml",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "Don't open the terminal menu",
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	if c.Bool("headless") {
		conf.Bot.Headless = true
	}

	if err := log.Init(log.Options{Debug: conf.Log.Debug}); err != nil {
		return errors.Wrap(err, "setting up logging")
	}

	log.Infof("Token present: %v", conf.Auth.Discord != "")
	log.Infof("Client ID present: %v", conf.Auth.ClientID.IsValid())

	if err := conf.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// set up sentry
	if conf.Auth.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	opts, err := conf.SweepOptions()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	b, err := bot.New(conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}
	cache.Setup(b)

	srv := server.New(conf.Server.Port, b.Cabinet)
	if err := srv.Listen(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("shutting down http server: %v", err)
		}
	}()

	// actually run bot!
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	defer func() {
		err = b.Close()
		if err != nil {
			log.Errorf("closing gateway connection: %v", err)
		}
	}()

	select {
	case <-b.Ready():
	case <-ctx.Done():
		return nil
	}

	if !conf.Bot.NoSyncCommands {
		if err := b.SyncCommands(); err != nil {
			log.Errorf("syncing slash commands: %v", err)
		}
	} else {
		log.Info("Note: not syncing slash commands. Unset no_sync_commands to sync commands")
	}

	seq := sweep.New(b.State(), b.Cabinet, opts)
	log.Infof("Using %v execution policy", seq.Policy())

	if conf.Bot.Headless {
		log.Info("Running headless. Press Ctrl-C or send an interrupt signal to stop.")
		<-ctx.Done()
		return nil
	}

	exited, err := runMenu(ctx, conf, seq)
	if err != nil {
		log.Errorf("running menu: %v", err)
	}

	if exited {
		log.Info("Menu closed. The bot keeps running; press Ctrl-C or send an interrupt signal to stop.")
	}
	<-ctx.Done()
	return nil
}

// runMenu blocks until the menu is closed. Logs go to the configured file while it's open.
// exited is true if the user chose to leave the menu, rather than it being stopped by a signal.
func runMenu(ctx context.Context, conf bot.Config, seq *sweep.Sequencer) (exited bool, err error) {
	actions, err := actionlog.New(conf.Log.ActionLog)
	if err != nil {
		return false, err
	}
	defer actions.Close()

	if err := log.Init(log.Options{Debug: conf.Log.Debug, File: conf.Log.File}); err != nil {
		return false, errors.Wrap(err, "redirecting logs")
	}
	defer func() {
		if err := log.Init(log.Options{Debug: conf.Log.Debug}); err != nil {
			log.Errorf("restoring logging: %v", err)
		}
	}()

	m := menu.New(ctx, seq, menu.Options{
		Confirm:  conf.Sweep.Confirm,
		Recorder: actions,
	})

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return false, err
	}

	fm, ok := final.(menu.Model)
	return ok && fm.Quitting(), nil
}
