package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/monify-labs/hostreport/internal/config"
	"github.com/monify-labs/hostreport/internal/locale"
	"github.com/monify-labs/hostreport/internal/probe"
	"github.com/monify-labs/hostreport/internal/refresh"
	"github.com/monify-labs/hostreport/internal/render"
	"github.com/monify-labs/hostreport/internal/report"
	"github.com/monify-labs/hostreport/internal/sender"
	"github.com/monify-labs/hostreport/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load environment file
	if err := config.LoadEnvFile(config.EnvFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load env file: %v\n", err)
	}

	command, args := os.Args[1], os.Args[2:]

	switch command {
	case "show":
		runShow(args)
	case "interactive":
		runInteractive(args)
	case "send":
		runSend(args)
	case "config":
		runConfig(args)
	case "version":
		showVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hostreport - Host telemetry report

Usage:
  hostreport <command> [flags]

Commands:
  show          Collect and print the report
  interactive   Print the report; press Enter to refresh, q to quit
  send          Collect the report and post it to the export URL
  config        Save language, export URL or token to the env file
  version       Show version information
  help          Show this help message

Environment Variables:
  HOSTREPORT_LANG        Report language (en, it, es, fr, de)
  HOSTREPORT_CONFIG      Config file (default: /etc/hostreport/config.yaml)
  HOSTREPORT_EXPORT_URL  Export endpoint for 'send'
  HOSTREPORT_TOKEN       Bearer token for 'send'
  HOSTREPORT_PARALLEL    Run probes concurrently (true/false)
  HOSTREPORT_DEBUG       Enable debug logging (true/1)

Configuration File:
  /etc/hostreport/env    Environment variables file

Examples:
  hostreport show
  hostreport show --json
  HOSTREPORT_LANG=it hostreport show --plain
  sudo hostreport config --url https://reports.example.com/v1/hosts --token TOKEN
  hostreport send`)
}

// app holds what every command needs to produce reports.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	resolver *locale.Resolver
	builder  *report.Builder
}

func newApp(debug bool) *app {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fatal(err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if debug || cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	resolver := locale.NewResolver(cfg.Language)
	prober := probe.New(probe.DefaultSources(log), cfg.ProbeOptions(), log)

	return &app{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		builder:  report.New(prober, resolver, cfg.Parallel, log),
	}
}

// collect runs a single refresh through the coordinator and waits for it.
func (a *app) collect(ctx context.Context) models.Report {
	reports := make(chan models.Report, 1)
	coordinator := refresh.New(a.builder, refresh.Latest(reports), a.log)
	coordinator.Request(ctx)
	return <-reports
}

func runShow(args []string) {
	flags := pflag.NewFlagSet("show", pflag.ExitOnError)
	plain := flags.Bool("plain", false, "disable colors and styling")
	asJSON := flags.Bool("json", false, "print the report as JSON")
	debug := flags.Bool("debug", false, "enable debug logging")
	flags.Parse(args)

	a := newApp(*debug)
	ctx, cancel := signalContext()
	defer cancel()

	if *asJSON {
		if err := render.WriteJSON(os.Stdout, a.collect(ctx)); err != nil {
			fatal(err)
		}
		return
	}

	renderer := render.New(os.Stdout, *plain)
	renderer.Status(locale.Lookup(a.resolver.Resolve(), locale.KeyAnalyzing))
	if err := renderer.Render(a.collect(ctx)); err != nil {
		fatal(err)
	}
}

func runInteractive(args []string) {
	flags := pflag.NewFlagSet("interactive", pflag.ExitOnError)
	plain := flags.Bool("plain", false, "disable colors and styling")
	debug := flags.Bool("debug", false, "enable debug logging")
	flags.Parse(args)

	a := newApp(*debug)
	ctx, cancel := signalContext()
	defer cancel()

	t := locale.For(a.resolver.Resolve())
	renderer := render.New(os.Stdout, *plain)

	// A report not yet rendered is replaced by a newer one, so the
	// producer never waits on the terminal.
	reports := make(chan models.Report, 1)
	coordinator := refresh.New(a.builder, refresh.Latest(reports), a.log)

	input := make(chan string)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- strings.TrimSpace(scanner.Text())
		}
	}()

	renderer.Status(t.T(locale.KeyAnalyzing))
	coordinator.Request(ctx)

	for {
		select {
		case <-ctx.Done():
			coordinator.Wait()
			return

		case r := <-reports:
			if err := renderer.Render(r); err != nil {
				a.log.WithError(err).Error("Failed to render report")
			}

		case line, ok := <-input:
			if !ok || line == "q" || line == "quit" {
				coordinator.Wait()
				return
			}
			if coordinator.Request(ctx) {
				renderer.Status(t.T(locale.KeyRefreshing))
			} else {
				renderer.Status(t.T(locale.KeyBusy))
			}
		}
	}
}

func runSend(args []string) {
	flags := pflag.NewFlagSet("send", pflag.ExitOnError)
	url := flags.String("url", "", "export endpoint (overrides config)")
	debug := flags.Bool("debug", false, "enable debug logging")
	flags.Parse(args)

	a := newApp(*debug)
	if *url == "" {
		*url = a.cfg.ExportURL
	}
	if *url == "" {
		fatal(errors.New("no export URL configured; use --url or HOSTREPORT_EXPORT_URL"))
	}

	token, err := config.GetToken()
	if err != nil {
		a.log.WithError(err).Warn("Sending without authentication")
	}

	ctx, cancel := signalContext()
	defer cancel()

	r := a.collect(ctx)
	if r.Fatal {
		a.log.Warn("Report generation failed, sending the diagnostic section")
	}

	payload := sender.NewPayload(&r)
	resp, err := sender.NewHTTPSender(*url, token).Send(ctx, payload)
	if err != nil {
		if errors.Is(err, sender.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Error: authentication failed - token invalid/expired")
			fmt.Fprintln(os.Stderr, "Run: sudo hostreport config --token TOKEN")
			os.Exit(3)
		}
		fatal(err)
	}

	a.log.WithField("report_id", payload.ReportID).WithField("kind", payload.Kind).Info("Report sent")
	fmt.Printf("Stored as %s (%s)\n", resp.ID, resp.Status)
}

func runConfig(args []string) {
	flags := pflag.NewFlagSet("config", pflag.ExitOnError)
	lang := flags.String("lang", "", "report language")
	url := flags.String("url", "", "export endpoint")
	token := flags.String("token", "", "export bearer token")
	unset := flags.StringSlice("clear", nil, "variables to remove (lang, url, token)")
	flags.Parse(args)

	vars := map[string]string{}
	if *lang != "" {
		if _, ok := locale.Match(*lang); !ok {
			fatal(fmt.Errorf("unsupported language %q (supported: %s)", *lang, strings.Join(locale.Supported, ", ")))
		}
		vars["HOSTREPORT_LANG"] = *lang
	}
	if *url != "" {
		vars["HOSTREPORT_EXPORT_URL"] = *url
	}
	if *token != "" {
		vars["HOSTREPORT_TOKEN"] = *token
	}
	for _, name := range *unset {
		switch name {
		case "lang":
			vars["HOSTREPORT_LANG"] = ""
		case "url":
			vars["HOSTREPORT_EXPORT_URL"] = ""
		case "token":
			vars["HOSTREPORT_TOKEN"] = ""
		default:
			fatal(fmt.Errorf("unknown variable %q", name))
		}
	}

	if len(vars) == 0 {
		fmt.Println("Nothing to save. See: hostreport config --help")
		return
	}

	if err := config.SaveEnvFile(config.EnvFilePath, vars); err != nil {
		fatal(err)
	}
	fmt.Printf("Saved to %s\n", config.EnvFilePath)
}

func showVersion() {
	fmt.Printf("hostreport v%s\n", config.Version)
	fmt.Printf("Commit: %s\n", config.Commit)
	fmt.Printf("Build Date: %s\n", config.BuildDate)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nReceived shutdown signal...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
