package server

import (
	"flag"

	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

// StartConfig holds the values used when the start flags are not given.
type StartConfig struct {
	Bind  string
	Debug bool
}

func parseFlags(defaults StartConfig, args []string) (StartConfig, error) {
	conf := defaults
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, defaults.Bind, "address server listens on")
	startFlags.BoolVar(&conf.Debug, flagDebug, defaults.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if conf.Bind == "" {
		return conf, errors.Wrap(errors.ErrEmpty, "bind address")
	}
	return conf, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI
// socket until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, defaults StartConfig, args []string) error {
	conf, err := parseFlags(defaults, args)
	if err != nil {
		return err
	}

	app, err := gen(home, logger, conf.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)

	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start server")
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	// TrapSignal exits the process once the server is stopped.
	select {}
}
