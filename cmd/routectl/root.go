package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/pkg/navigation"
)

type options struct {
	configFile string
	routesFile string
	base       string
	history    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Inspect and validate navigation route tables",
		Long: `routectl loads a route table the same way the server does and answers
questions about it: which view a path resolves to, which URL a named route
produces, whether a table is valid, and where a sequence of navigation
steps ends up.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "service config file (default: built-in route table)")
	flags.StringVarP(&opts.routesFile, "routes", "r", "", "routes file (.toml, .yaml or .yml)")
	flags.StringVar(&opts.base, "base", "", "deployment base path (overrides config and APP_BASE_URL)")
	flags.StringVar(&opts.history, "history", "", "history mode: web or memory")

	cmd.AddCommand(
		newRoutesCmd(opts),
		newResolveCmd(opts),
		newHrefCmd(opts),
		newValidateCmd(opts),
		newNavigateCmd(opts),
	)

	return cmd
}

// load builds the router configuration. Command-line flags take precedence
// over environment variables, which take precedence over the config file.
func (o *options) load() (*config.RouterConfig, error) {
	cfg := &config.Config{}
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.routesFile != "" {
		cfg.Router.RoutesFile = o.routesFile
	}
	if err := cfg.Router.Finalize(); err != nil {
		return nil, err
	}

	if o.base != "" {
		cfg.Router.BasePath = o.base
	}
	if o.history != "" {
		cfg.Router.History = navigation.HistoryMode(o.history)
	}
	return &cfg.Router, nil
}

func (o *options) table() (*navigation.Table[string], error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return cfg.Table()
}
