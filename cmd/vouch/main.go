package main

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/vouch/internal/report"
	"github.com/unbound-force/vouch/internal/runner"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "vouch",
		Short: "Vouch — flags test cases that perform no assertions",
		Long: `Vouch scans Java test sources and reports test cases that never
assert anything: a test with no assertions verifies nothing and
passes no matter how the code under test behaves.`,
		Version: version,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// checkParams holds the parsed flags for the check command.
type checkParams struct {
	paths            []string
	format           string
	configPath       string
	customAssertions string
	include          []string
	exclude          []string
	jobs             int
	failOnFindings   bool
	interactive      bool
	stdout           io.Writer
	stderr           io.Writer
}

// runCheck is the extracted, testable body of the check command.
func runCheck(p checkParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	log := logger
	if p.stderr != nil {
		log = charmlog.NewWithOptions(p.stderr, charmlog.Options{
			ReportTimestamp: false,
		})
	}

	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	// Flags override the config file.
	if p.customAssertions == "" {
		p.customAssertions = cfg.CustomAssertions
	}
	if len(p.include) == 0 {
		p.include = cfg.Include
	}
	if len(p.exclude) == 0 {
		p.exclude = cfg.Exclude
	}
	if p.jobs == 0 {
		p.jobs = cfg.Jobs
	}

	log.Info("checking", "paths", p.paths)
	res, err := runner.Run(p.paths, runner.Options{
		CustomAssertions: p.customAssertions,
		Include:          p.include,
		Exclude:          p.exclude,
		Jobs:             p.jobs,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	log.Info("check complete",
		"units", res.Units, "findings", len(res.Findings))

	if p.interactive {
		if err := runInteractiveCheck(res); err != nil {
			return err
		}
	} else {
		switch p.format {
		case "json":
			err = report.WriteJSON(p.stdout, res, "0.1.0")
		default:
			err = report.WriteText(p.stdout, res)
		}
		if err != nil {
			return err
		}
	}

	if p.failOnFindings && len(res.Findings) > 0 {
		return fmt.Errorf("%d test case(s) without assertions", len(res.Findings))
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var (
		format           string
		configPath       string
		customAssertions string
		include          []string
		exclude          []string
		jobs             int
		failOnFindings   bool
		interactive      bool
	)

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Java test sources for assertion-free test cases",
		Long: `Check walks the given files and directories for Java sources and
reports every test case that performs no assertion. Custom
assertion methods can be declared with --custom-assertions as a
comma-separated list of Type#methodOrPrefix* entries, e.g.

    --custom-assertions "org.example.Checks#verifyAll,org.example.Checks#assert*"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(checkParams{
				paths:            args,
				format:           format,
				configPath:       configPath,
				customAssertions: customAssertions,
				include:          include,
				exclude:          exclude,
				jobs:             jobs,
				failOnFindings:   failOnFindings,
				interactive:      interactive,
				stdout:           os.Stdout,
				stderr:           os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to a YAML config file")
	cmd.Flags().StringVar(&customAssertions, "custom-assertions", "",
		"comma-separated Type#methodOrPrefix* assertion matchers")
	cmd.Flags().StringSliceVar(&include, "include", nil,
		"glob patterns of files to analyze (default: all .java)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil,
		"glob patterns of files to skip")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of parallel workers (default: one per CPU)")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false,
		"exit non-zero when any finding is reported")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing findings")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for Vouch check output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of vouch check --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
