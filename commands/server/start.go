package server

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/errors"
)

const (
	flagBind   = "bind"
	flagConfig = "config"
	flagDebug  = "debug"

	eventLogSubscriber = "bazaard-log"
)

// AppGenerator lets us lazily initialize app, using home dir and logger
// potentially initialized with other flags. The bus receives the events
// of every committed block.
type AppGenerator func(home string, logger log.Logger, bus *app.EventBus, debug bool) (abci.Application, error)

// parseStartFlags loads the configuration file and applies the command
// line flags on top of it.
func parseStartFlags(home string, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	path := startFlags.String(flagConfig, filepath.Join(home, ConfigFile), "node configuration file")
	bind := startFlags.String(flagBind, "", "address server listens on (overrides the config file)")
	debug := startFlags.Bool(flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return Config{}, errors.Wrap(errors.ErrInput, err.Error())
	}

	conf, err := LoadConfig(*path)
	if err != nil {
		return conf, err
	}
	if *bind != "" {
		conf.Bind = *bind
	}
	if *debug {
		conf.Debug = true
	}
	return conf, nil
}

// StartCmd initializes the application and serves it over an ABCI socket
// until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := parseStartFlags(home, args)
	if err != nil {
		return err
	}
	lvl, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, lvl)

	bus := app.NewEventBus(conf.Events.Buffer)
	bus.SetLogger(logger.With("module", "events"))
	if err := bus.Start(); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	defer bus.Stop()

	if conf.Events.Log {
		if err := logEvents(context.Background(), bus, logger.With("module", "events")); err != nil {
			return err
		}
	}

	application, err := gen(home, logger, bus, conf.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "start server: %s", err)
	}

	waitForSignal()
	logger.Info("Stopping ABCI app")
	return svr.Stop()
}

// logEvents writes every committed event to the logger until the bus is
// stopped.
func logEvents(ctx context.Context, bus *app.EventBus, logger log.Logger) error {
	sub, err := bus.Subscribe(ctx, eventLogSubscriber, app.HeightTag+" > 0", 100)
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case msg := <-sub.Out():
				ev, ok := msg.Data().(app.CommittedEvent)
				if !ok {
					continue
				}
				keyvals := []interface{}{"height", ev.Height, "path", ev.Event.Path()}
				for _, t := range ev.Event.Tags() {
					keyvals = append(keyvals, string(t.Key), string(t.Value))
				}
				logger.Info("Committed event", keyvals...)
			case <-sub.Cancelled():
				logger.Info("Event subscription closed", "reason", sub.Err())
				return
			}
		}
	}()
	return nil
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
