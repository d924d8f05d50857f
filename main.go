package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/app"
	"github.com/pstuifzand/policy-tracker/internal/config"
	"github.com/pstuifzand/policy-tracker/internal/diff"
	"github.com/pstuifzand/policy-tracker/internal/export"
	"github.com/pstuifzand/policy-tracker/internal/history"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/pstuifzand/policy-tracker/internal/theme"
	"github.com/pstuifzand/policy-tracker/internal/ui"
	"github.com/pstuifzand/policy-tracker/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

type options struct {
	apiURL     string
	configPath string
	logFile    string
	logLevel   string
	debug      bool
}

type listOptions struct {
	company string
	size    string
	page    int
	limit   int
	from    string
	to      string
}

// env is what every subcommand needs, built once flags are parsed
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	client  *api.Client
	closeFn func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ppct",
		Short: "Browse privacy policy changes",
		Long: `ppct lists the changes a privacy policy tracker found between versions of
tracked documents. Without a subcommand it starts the terminal interface.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, io.Discard)
			if err != nil {
				return err
			}
			defer e.closeFn()
			return runTUI(e, opts.debug)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", "", "Base URL of the change API (default from config, "+config.DefaultAPIBaseURL+")")
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file (default ~/.config/policy-tracker/config.toml)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging and key debugging in the interface")

	cmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newSummaryCmd(opts),
		newCompaniesCmd(opts),
	)
	return cmd
}

// setup loads the config, applies flag overrides and builds the logger
// and client. Logs go to the log file when one is set, to defaultLog with
// --debug, and nowhere otherwise.
func setup(opts *options, defaultLog io.Writer) (*env, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// flags are session settings so Save never writes them to the file
	for key, value := range map[string]string{
		"api_base_url": opts.apiURL,
		"log_file":     opts.logFile,
		"log_level":    opts.logLevel,
	} {
		if value != "" {
			cfg.Set(key, value)
		}
	}

	log, closeFn, err := newLogger(cfg, opts.debug, defaultLog)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		log:     log,
		client:  api.NewClient(cfg.Get("api_base_url"), nil, log),
		closeFn: closeFn,
	}, nil
}

func newLogger(cfg *config.Config, debug bool, defaultLog io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.Get("log_level"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Get("log_level"), err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	closeFn := func() {}
	switch {
	case cfg.Get("log_file") != "":
		f, err := os.OpenFile(cfg.Get("log_file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		log.SetOutput(f)
		closeFn = func() { f.Close() }
	case debug:
		log.SetOutput(defaultLog)
	default:
		log.SetOutput(io.Discard)
	}
	return log, closeFn, nil
}

func runTUI(e *env, debug bool) error {
	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(e.cfg.Get("theme")))
	if err != nil {
		return err
	}

	hist, err := history.NewManager()
	if err != nil {
		e.log.WithError(err).Warn("Prompt history disabled")
		hist = nil
	}

	application := app.NewApp(app.Options{
		Screen:  screen,
		Config:  e.cfg,
		Fetcher: e.client,
		Logger:  e.log,
		History: hist,
	})
	application.SetDebugMode(debug)

	return application.Run()
}

// userError hides the cause of a failed request behind a fixed message;
// the cause goes to the log. Any other error is returned as it is.
func userError(e *env, msg string, err error) error {
	if !api.IsRequestFailed(err) {
		return err
	}
	e.log.WithError(err).Error(msg)
	return errors.New(msg)
}

func newListCmd(opts *options) *cobra.Command {
	lo := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := model.ParseSizeBucket(lo.size)
			if err != nil {
				return err
			}
			for _, d := range []string{lo.from, lo.to} {
				if err := api.ValidateDate(d); err != nil {
					return err
				}
			}

			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.closeFn()

			limit := lo.limit
			if limit <= 0 {
				limit = e.cfg.GetInt("page_size", view.DefaultPageSize)
			}
			page, err := e.client.ListChanges(cmd.Context(), api.ListParams{
				Page:       lo.page,
				Limit:      limit,
				Company:    lo.company,
				ChangeSize: size,
				FromDate:   lo.from,
				ToDate:     lo.to,
			})
			if err != nil {
				return userError(e, view.ErrFetchChanges, err)
			}

			out := cmd.OutOrStdout()
			if len(page.Changes) == 0 {
				fmt.Fprintln(out, "No changes found.")
				return nil
			}
			items := make([]string, len(page.Changes))
			for i, s := range page.Changes {
				items[i] = diff.PlainText(diff.ItemLines(s, e.cfg.Get("date_format")))
			}
			fmt.Fprint(out, strings.Join(items, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVar(&lo.company, "company", "", "Only changes of this company")
	cmd.Flags().StringVar(&lo.size, "size", "", "Change size: small, medium or large")
	cmd.Flags().IntVar(&lo.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&lo.limit, "limit", 0, "Changes per page (default from config)")
	cmd.Flags().StringVar(&lo.from, "from", "", "Captured on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&lo.to, "to", "", "Captured on or before this date (YYYY-MM-DD)")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the full diff of a change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.closeFn()

			change, err := e.client.GetChangeDetail(cmd.Context(), args[0])
			if err != nil {
				return userError(e, view.ErrFetchDiff, err)
			}
			if markdown {
				fmt.Fprint(cmd.OutOrStdout(), export.ChangeToMarkdown(change))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.PlainText(diff.BuildDiffLines(change)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the diff as Markdown")
	return cmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <id>",
		Short: "Print the text changes of a change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.closeFn()

			change, err := e.client.GetChangeDetail(cmd.Context(), args[0])
			if err != nil {
				return userError(e, view.ErrFetchDetails, err)
			}
			lines := diff.ItemLines(change.ChangeSummary, e.cfg.Get("date_format"))
			lines = append(lines, diff.SummaryLines(change)...)
			fmt.Fprint(cmd.OutOrStdout(), diff.PlainText(lines))
			return nil
		},
	}
}

func newCompaniesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List tracked companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.closeFn()

			companies, err := e.client.ListCompanies(cmd.Context())
			if err != nil {
				return userError(e, view.ErrFetchCompany, err)
			}
			for _, name := range model.CompanyList(companies).Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
