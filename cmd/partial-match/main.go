package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Veraticus/partial-match/pkg/config"
	"github.com/Veraticus/partial-match/pkg/types"
)

const exitUsage = 2

func main() {
	var (
		configPath  string
		patterns    []string
		format      string
		colorMode   string
		strict      bool
		interactive bool
		debug       bool
		help        bool
	)

	flag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	flag.StringArrayVarP(&patterns, "pattern", "p", nil, "Pattern as name=expr (repeatable, replaces configured patterns)")
	flag.StringVarP(&format, "format", "f", "", "Output format: text, json or yaml")
	flag.StringVar(&colorMode, "color", "", "Color output: auto, always or never")
	flag.BoolVar(&strict, "strict", false, "Fail on patterns that do not compile")
	flag.BoolVarP(&interactive, "interactive", "i", false, "Validate input live as it is typed")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVarP(&help, "help", "h", false, "Show help message")
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(exitUsage)
	}

	// Override config with command line flags
	if err := applyFlags(cfg, patterns, format, colorMode, strict, debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(exitUsage)
	}

	inputs := flag.Args()
	useTerminal := len(inputs) == 0 && (interactive || isatty(os.Stdin.Fd()))

	// Create dependencies
	deps, err := NewDependencies(cfg, IO{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		StatusEnabled: useTerminal && isatty(os.Stderr.Fd()),
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	app := NewApplication(deps)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		deps.Close()
		os.Exit(130)
	}()

	switch {
	case len(inputs) > 0:
		app.MatchInputs(inputs)
	case useTerminal:
		err = app.RunInteractive("> ")
	default:
		err = app.RunStream(os.Stdin)
	}

	deps.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(app.ExitCode())
}

// applyFlags overrides cfg with the command line and validates the result
func applyFlags(cfg *config.Config, patterns []string, format, colorMode string, strict, debug bool) error {
	if len(patterns) > 0 {
		defs := make([]types.Pattern, 0, len(patterns))
		for _, p := range patterns {
			def, err := config.ParsePatternFlag(p)
			if err != nil {
				return err
			}
			defs = append(defs, def)
		}
		cfg.Patterns = defs
	}
	if format != "" {
		cfg.Format = strings.ToLower(format)
	}
	if colorMode != "" {
		cfg.Color = strings.ToLower(colorMode)
	}
	if strict {
		cfg.Strict = true
	}
	if debug {
		cfg.Debug = true
	}
	return config.Validate(cfg)
}

// newLogger builds a console logger on stderr. Only warnings and errors are
// shown unless debug is set.
func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func printUsage() {
	fmt.Println("partial-match - validate input against patterns while it is typed")
	fmt.Println()
	fmt.Println("Usage: partial-match [OPTIONS] [INPUT...]")
	fmt.Println()
	fmt.Println("With INPUT arguments each one is matched and reported.")
	fmt.Println("Without arguments, lines are read from stdin; on a terminal the")
	fmt.Println("status line tracks every keystroke.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  PARTIAL_MATCH_CONFIG            Path to config file")
	fmt.Println("  PARTIAL_MATCH_FORMAT            Output format (text, json, yaml)")
	fmt.Println("  PARTIAL_MATCH_COLOR             Color output (auto, always, never)")
	fmt.Println("  PARTIAL_MATCH_STRICT            Fail on broken patterns (true/false)")
	fmt.Println("  PARTIAL_MATCH_TIMESTAMP_FORMAT  strftime prefix for text reports")
	fmt.Println("  PARTIAL_MATCH_DEBUG             Enable debug logging (true/false)")
	fmt.Println()
	fmt.Println("Configuration file: ~/.config/partial-match/config.yaml")
	fmt.Println()
	fmt.Println("Exit status is 0 when the last input matched a pattern completely,")
	fmt.Println("1 when it did not, and 2 on usage or configuration errors.")
}
