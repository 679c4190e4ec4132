package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"passguard/internal/api"
	"passguard/internal/console"
	"passguard/internal/tui"
)

func main() {
	baseURL := flag.String("base-url", envOr("PASSGUARD_BASE_URL", "http://127.0.0.1:5000"), "Scoring service base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	checkOnce := flag.String("check", "", "Score a single password and exit")
	generateOnce := flag.Bool("generate", false, "Generate one password and exit")
	generateLength := flag.Int("length", 0, "Password length for -generate (0=service default)")
	seed := flag.Int64("telemetry-seed", 0, "Seed for the simulated telemetry feeds (0=random)")
	flag.Parse()

	client := api.NewClient(api.Config{
		BaseURL:        *baseURL,
		Timeout:        *timeout,
		GenerateLength: *generateLength,
	})

	if *checkOnce != "" {
		runSingleCheck(client, *checkOnce, *timeout)
		return
	}
	if *generateOnce {
		runSingleGenerate(client, *timeout)
		return
	}

	log := console.NewTerminalLog()
	log.Append("Passguard console started")

	// The dashboard needs the analyzer and the analyzer's redraw hook needs
	// the dashboard, so the hook goes through this indirection. Nothing
	// fires before the dashboard exists: the analyzer only reacts to input
	// events and telemetry starts below.
	var dashboard *tui.Dashboard
	redraw := func() {
		if dashboard != nil {
			dashboard.Redraw()
		}
	}

	analyzer := console.NewAnalyzer(client, log,
		console.WithRequestTimeout(*timeout),
		console.WithOnChange(redraw),
	)
	generator := console.NewGenerator(client, log, analyzer)
	generator.SetOnChange(redraw)
	telemetry := console.NewTelemetry(console.NewRand(*seed),
		console.WithTelemetryOnUpdate(redraw),
	)

	dashboard = tui.NewDashboard(analyzer, generator, telemetry, log)

	ctx, cancel := context.WithCancel(context.Background())
	telemetry.Start(ctx)
	defer func() {
		cancel()
		telemetry.Stop()
		analyzer.Close()
	}()

	if err := dashboard.Run(); err != nil {
		exitWith("dashboard failed: " + err.Error())
	}
}

func runSingleCheck(client *api.Client, password string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	resp, _, err := client.Check(ctx, password)
	if err != nil {
		exitWith("check failed: " + err.Error())
	}
	if resp.Error != "" {
		exitWith("check failed: " + resp.Error)
	}
	fmt.Printf("Strength: %s (%d/4)\n", resp.Strength, resp.Score)
	fmt.Println(resp.Message)
	for _, suggestion := range resp.Suggestions {
		fmt.Printf("  - %s\n", suggestion)
	}
}

func runSingleGenerate(client *api.Client, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	resp, _, err := client.Generate(ctx)
	if err != nil {
		exitWith("generate failed: " + err.Error())
	}
	if resp.Error != "" {
		exitWith("generate failed: " + resp.Error)
	}
	fmt.Println(resp.Password)
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func exitWith(message string) {
	fmt.Fprintln(os.Stderr, "error:", message)
	os.Exit(2)
}
