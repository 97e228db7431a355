package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/reflex-sim/internal/audit"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the audit database")
	last := flag.Int("last", 20, "show N most recent records")
	reflex := flag.String("reflex", "", "filter to one reflex kind")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/audit.db [--last N] [--reflex kind] [--json]")
		os.Exit(2)
	}

	store, err := audit.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(store, *last, *reflex, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list

func run(store *audit.Store, last int, reflexFilter string, jsonOut bool) error {
	records, err := store.Recent(last)
	if err != nil {
		return err
	}

	if reflexFilter != "" {
		filtered := records[:0]
		for _, rec := range records {
			if string(rec.Reflex) == reflexFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no records found")
		return nil
	}

	total, err := store.Count()
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	fmt.Printf("%-8s %-8s %-15s %-14s %-8s %-6s %s\n",
		"TIME", "FIBER", "STIMULUS", "REFLEX", "SEVERITY", "UNITS", "FLAGS")
	for _, rec := range records {
		fmt.Printf("%-8d %-8s %-15s %-14s %-8s %-6d %s\n",
			rec.TickTime, rec.Fiber, rec.Stimulus, rec.Reflex, rec.Severity,
			len(rec.MotorUnitsFired), flags(rec))
	}
	fmt.Printf("\n%d shown of %d total\n", len(records), total)
	return nil
}

func flags(rec audit.Record) string {
	var out []string
	if rec.NoOp {
		out = append(out, "noop")
	}
	if rec.OverrideApplied {
		out = append(out, "override")
	}
	if rec.CooldownApplied {
		out = append(out, "cooldown")
	}
	if rec.RenshawBlocked {
		out = append(out, "renshaw")
	}
	if rec.RejectReason != "" {
		out = append(out, "reject:"+rec.RejectReason)
	}
	if len(rec.AscendErrors) > 0 {
		out = append(out, fmt.Sprintf("ascend_errs=%d", len(rec.AscendErrors)))
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}

// #endregion list
