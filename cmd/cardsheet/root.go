package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/cardsheet"
	"github.com/tsawler/cardsheet/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	query      string
	dept       string
	capacity   int
}

func newRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "cardsheet",
		Short:         "Generate printable student identity card sheets",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "YAML layout configuration file")
	flags.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVarP(&g.query, "query", "q", "", "only include records with a field containing this text")
	flags.StringVar(&g.dept, "dept", "", "only include records of this department")
	flags.IntVar(&g.capacity, "capacity", 0, "cards per page (default from config)")

	root.AddCommand(
		newGenerateCommand(g),
		newPreviewCommand(g),
		newStatsCommand(g),
		newTemplateCommand(),
		newServeCommand(g),
	)
	return root
}

// logger builds a text logger on the command's stderr.
func (g *globals) logger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(g.logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", g.logLevel)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

func (g *globals) config() (config.Config, error) {
	if g.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(g.configPath)
}

// sheet configures a Sheet for the roster at path from the flags.
func (g *globals) sheet(cmd *cobra.Command, path string) (*cardsheet.Sheet, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	logger, err := g.logger(cmd)
	if err != nil {
		return nil, err
	}

	s := cardsheet.Open(path).
		Config(cfg).
		Search(g.query).
		Department(g.dept).
		Logger(logger)
	if g.capacity > 0 {
		s = s.Capacity(g.capacity)
	}
	return s, nil
}
