package server

import (
	"flag"
	"net/http"

	"github.com/iov-one/swap/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind        = "bind"
	flagDebug       = "debug"
	flagMetricsBind = "metrics_bind"
)

// StartConfig holds the settings of a running node.
type StartConfig struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns full error information, with stack traces, to clients.
	Debug bool `toml:"debug"`
	// MetricsBind is the address serving prometheus metrics. Empty
	// disables the endpoint.
	MetricsBind string `toml:"metrics_bind"`
}

// DefaultStartConfig returns the settings used when nothing else is
// configured.
func DefaultStartConfig() StartConfig {
	return StartConfig{
		Bind: "tcp://localhost:26658",
	}
}

// ParseStartFlags returns the defaults overridden by the command line
// flags.
func ParseStartFlags(defaults StartConfig, args []string) (StartConfig, error) {
	conf := defaults
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&conf.Bind, flagBind, defaults.Bind, "address server listens on")
	startFlags.BoolVar(&conf.Debug, flagDebug, defaults.Debug, "call stack returned on error")
	startFlags.StringVar(&conf.MetricsBind, flagMetricsBind, defaults.MetricsBind, "address serving prometheus metrics")
	if err := startFlags.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives a termination signal, which exits the process.
func StartCmd(gen AppGenerator, logger log.Logger, home string, conf StartConfig) error {
	// Generate the app in the proper dir
	app, err := gen(home, logger, conf.Debug)
	if err != nil {
		return err
	}

	if conf.MetricsBind != "" {
		logger.Info("Serving metrics", "bind", conf.MetricsBind)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(conf.MetricsBind, mux); err != nil {
				logger.Error("Metrics server stopped", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "cannot start server: %s", err)
	}

	cmn.TrapSignal(logger, func() {
		// Cleanup
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop server", "err", err)
		}
	})

	// Run forever.
	select {}
}
