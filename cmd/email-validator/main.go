package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/ignite/email-validator/internal/batch"
	"github.com/ignite/email-validator/internal/config"
	"github.com/ignite/email-validator/internal/disposable"
	"github.com/ignite/email-validator/internal/pkg/logger"
	"github.com/ignite/email-validator/internal/report"
	"github.com/ignite/email-validator/internal/validator"
	"github.com/schollz/progressbar/v3"
)

const version = "1.0.0"

type options struct {
	inputPath  string
	outputPath string
	configPath string
	verbose    bool
}

func main() {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.inputPath, "input", "", "text file with one email address per line (required)")
	flag.StringVar(&opts.outputPath, "output", "", "CSV file for results (default "+config.DefaultOutputPath+")")
	flag.StringVar(&opts.configPath, "config", "", "optional YAML configuration file")
	flag.BoolVar(&opts.verbose, "verbose", false, "print per-address validation details")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("email-validator %s\n", version)
		os.Exit(0)
	}

	if opts.inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(opts))
}

// run executes one validation pass and returns the process exit code.
// Exit 1 is reserved for input problems: everything after a successful
// read completes the run, even if saving the results fails.
func run(opts options) int {
	cfg, err := config.LoadFromEnv(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.outputPath != "" {
		cfg.Output.Path = opts.outputPath
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "value", cfg.Log.Level)
	}
	logger.SetLevel(level)
	logger.SetRedactPII(cfg.Log.RedactEmails)

	domains, err := disposable.Load(cfg.Blocklist.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot read blocklist: %v\n", err)
		return 1
	}

	addresses, err := batch.ReadAddresses(opts.inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: input file %q not found\n", opts.inputPath)
		} else {
			fmt.Fprintf(os.Stderr, "Error: cannot read input file %q: %v\n", opts.inputPath, err)
		}
		return 1
	}
	if len(addresses) == 0 {
		fmt.Fprintln(os.Stderr, "No emails to process. Exiting.")
		return 1
	}

	classifier := validator.New(domains)
	classifier.SetTimeout(cfg.DNS.Timeout())

	runner := batch.NewRunner(classifier)
	runner.SetWorkers(cfg.Runner.Workers)

	bar := progressbar.NewOptions(len(addresses),
		progressbar.OptionSetDescription("Validating emails"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("email"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
	runner.SetProgressFunc(func(done, total int) {
		_ = bar.Set(done)
	})

	result := runner.Run(context.Background(), addresses)
	_ = bar.Finish()

	if err := report.WriteCSV(cfg.Output.Path, result.Results); err != nil {
		logger.Error("failed to save results", "path", cfg.Output.Path, "error", err.Error())
		fmt.Fprintf(os.Stderr, "Error saving results: %v\n", err)
	} else {
		fmt.Printf("Results saved to %s (%d emails processed)\n", cfg.Output.Path, len(result.Results))
	}

	if opts.verbose {
		report.RenderVerbose(os.Stdout, result.Results)
	}

	report.BuildSummary(result.Results).Render(os.Stdout)
	return 0
}
