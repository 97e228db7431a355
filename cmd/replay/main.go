package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/reflex-sim/internal/config"
	"github.com/danielpatrickdp/reflex-sim/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	configPath := flag.String("config", "", "optional engine config YAML")
	verbose := flag.Bool("v", false, "print every audit record, not just mismatches")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--config reflex.yaml] [-v]")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	result, err := replay.Run(fixture, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if fixture.Description != "" {
		fmt.Printf("fixture: %s\n", fixture.Description)
	}
	fmt.Printf("stimuli=%d events=%d records=%d\n",
		len(fixture.Stimuli), result.Processed, len(result.Records))

	if *verbose {
		for i, rec := range result.Records {
			fmt.Printf("  [%d] t=%dms %s/%s reflex=%s severity=%s units=%d noop=%t\n",
				i, rec.TickTime, rec.Stimulus, rec.Fiber, rec.Reflex, rec.Severity,
				len(rec.MotorUnitsFired), rec.NoOp)
		}
	}

	if result.Passed() {
		fmt.Printf("PASS: %d expectations held\n", len(fixture.Expected))
		return
	}

	for _, m := range result.Mismatches {
		fmt.Printf("MISMATCH record %d field %s: want %s, got %s\n", m.Index, m.Field, m.Want, m.Got)
	}
	os.Exit(1)
}

// #endregion main
