// Command rlpdump decodes, encodes and hashes RLP data from the command line.
//
// Usage:
//
//	rlpdump decode [--all] [--json] <hex>
//	rlpdump encode <json>
//	rlpdump hash <hex>
//
// Global flags:
//
//	--config           TOML file with [limits] and [log] sections
//	--max-depth        Maximum list nesting (0 = unlimited)
//	--max-string-size  Maximum declared string length (0 = unlimited)
//	--max-list-size    Maximum declared list payload (0 = unlimited)
//	--log.level        debug, info, warn or error
//	--log.format       text or json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eth2030/rlpcodec/log"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	cfg    *Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	var configPath string
	root := &cobra.Command{
		Use:           "rlpdump",
		Short:         "Inspect and produce RLP-encoded data",
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, configPath)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file")
	pf.Int("max-depth", 0, "maximum list nesting depth (0 = unlimited)")
	pf.Uint64("max-string-size", 0, "maximum declared string length in bytes (0 = unlimited)")
	pf.Uint64("max-list-size", 0, "maximum declared list payload in bytes (0 = unlimited)")
	pf.String("log.level", "", "log level: debug, info, warn, error")
	pf.String("log.format", "", "log format: text, json")

	root.AddCommand(a.decodeCmd(), a.encodeCmd(), a.hashCmd())
	return root
}

// setup loads the config file, applies explicitly set flags over it and
// installs the logger.
func (a *app) setup(cmd *cobra.Command, configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.Limits.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("max-string-size") {
		cfg.Limits.MaxStringSize, _ = flags.GetUint64("max-string-size")
	}
	if flags.Changed("max-list-size") {
		cfg.Limits.MaxListSize, _ = flags.GetUint64("max-list-size")
	}
	if flags.Changed("log.level") {
		cfg.Log.Level, _ = flags.GetString("log.level")
	}
	if flags.Changed("log.format") {
		cfg.Log.Format, _ = flags.GetString("log.format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := log.NewWriter(a.stderr, cfg.level(), cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.Module("rlpdump")
	a.logger.Debug("configuration loaded",
		"file", cfg.ConfigFile,
		"max_depth", cfg.Limits.MaxDepth,
		"max_string_size", cfg.Limits.MaxStringSize,
		"max_list_size", cfg.Limits.MaxListSize,
	)
	return nil
}
