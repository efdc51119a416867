// Command skyroute plans cheapest flight routes from the terminal.
//
// With -origin and -destination it answers one query and exits; without
// them it runs an interactive session reading airport pairs from stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/velmark/skyroute/internal/app"
	"github.com/velmark/skyroute/internal/config"
	"github.com/velmark/skyroute/internal/obs"
	"github.com/velmark/skyroute/pathfind"
	"github.com/velmark/skyroute/render"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config file")
		origin      = flag.String("origin", "", "origin IATA code for a one-shot query")
		destination = flag.String("destination", "", "destination IATA code for a one-shot query")
		verbose     = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	metrics := obs.NewMetrics(prometheus.NewRegistry())
	a, err := app.Build(context.Background(), cfg, logger, metrics)
	if err != nil {
		fatal(err)
	}

	if *origin != "" || *destination != "" {
		if *origin == "" || *destination == "" {
			fatal(errors.New("both -origin and -destination are required for a one-shot query"))
		}
		if err := plan(a, os.Stdout, *origin, *destination); err != nil {
			fatal(err)
		}

		return
	}

	if err := session(a, os.Stdin, os.Stdout); err != nil {
		fatal(err)
	}
}

// session runs the interactive loop until EOF or a quit command.
func session(a *app.App, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "skyroute: %d airports loaded, %d offers\n", a.Graph.AirportCount(), a.Graph.OfferCount())
	fmt.Fprintln(out, "Enter origin and destination codes; q quits.")

	scanner := bufio.NewScanner(in)
	for {
		origin, ok := prompt(scanner, out, "From: ")
		if !ok {
			return scanner.Err()
		}
		destination, ok := prompt(scanner, out, "To:   ")
		if !ok {
			return scanner.Err()
		}

		if err := plan(a, out, origin, destination); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprintln(out)
	}
}

// prompt reads one code, returning ok=false on EOF or quit.
func prompt(scanner *bufio.Scanner, out io.Writer, label string) (string, bool) {
	for {
		fmt.Fprint(out, label)
		if !scanner.Scan() {
			return "", false
		}
		text := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		switch text {
		case "":
			continue
		case "Q", "QUIT", "EXIT":
			return "", false
		default:
			return text, true
		}
	}
}

func plan(a *app.App, out io.Writer, origin, destination string) error {
	it, err := a.Planner.Plan(origin, destination)
	if errors.Is(err, pathfind.ErrNoRoute) {
		fmt.Fprintf(out, "No route found between %s and %s.\n",
			strings.ToUpper(strings.TrimSpace(origin)), strings.ToUpper(strings.TrimSpace(destination)))

		return nil
	}
	if err != nil {
		return err
	}

	return render.Text(out, it, a.Registry)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "skyroute:", err)
	os.Exit(1)
}
