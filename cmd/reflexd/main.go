package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/reflex-sim/internal/arc"
	"github.com/danielpatrickdp/reflex-sim/internal/ascend"
	"github.com/danielpatrickdp/reflex-sim/internal/audit"
	"github.com/danielpatrickdp/reflex-sim/internal/config"
	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/sched"
	"github.com/danielpatrickdp/reflex-sim/internal/ventral"
)

// #region main
func main() {
	configPath := envOr("REFLEX_CONFIG", "")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	queue := sched.New(cfg.QueueConfigValue())
	model := fiber.NewModel(cfg.FiberModelConfig())
	ring := audit.NewLog(cfg.AuditLogConfig())

	var sink *audit.Store
	if cfg.Audit.DBPath != "" {
		sink, err = audit.NewStore(cfg.Audit.DBPath)
		if err != nil {
			log.Fatalf("failed to open audit db: %v", err)
		}
		defer sink.Close()
	}

	orch := arc.New(
		dorsal.NewHorn(model, cfg.DorsalHornConfig()),
		ventral.NewHorn(cfg.VentralHornConfig()),
		ascend.NewForwarder(),
		nil,
		ring,
		sink,
		cfg.ArcOrchestratorConfig(),
	)

	deliver := func(arrival int64, s fiber.SensorySample) {
		rec := orch.HandleArrival(arrival, s)
		printRecord(rec)
	}

	fmt.Println("Reflex pathway simulator ready.")
	if cfg.Audit.DBPath != "" {
		fmt.Printf("  Audit DB: %s\n", cfg.Audit.DBPath)
	}
	fmt.Println("Commands:")
	fmt.Println("  stim <stimulus> <fiber> <intensity> <distance_cm>   queue a stimulus")
	fmt.Println("  drive <interval_ms> <intensity> <distance_cm>       periodic proprioceptive drive")
	fmt.Println("  stopdrive                                           cancel the drive")
	fmt.Println("  run <ms>                                            advance simulation time")
	fmt.Println("  status                                              queue and audit counters")
	fmt.Println("  quit")

	var driveID sched.EventID
	driveActive := false

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "stim":
			if err := handleStim(queue, model, deliver, fields[1:]); err != nil {
				log.Printf("stim error: %v", err)
			}
		case "drive":
			id, err := handleDrive(queue, model, deliver, fields[1:])
			if err != nil {
				log.Printf("drive error: %v", err)
				break
			}
			if driveActive {
				queue.Cancel(driveID)
			}
			driveID, driveActive = id, true
		case "stopdrive":
			if driveActive && queue.Cancel(driveID) {
				fmt.Println("drive cancelled")
			} else {
				fmt.Println("no active drive")
			}
			driveActive = false
		case "run":
			if err := handleRun(queue, fields[1:]); err != nil {
				log.Printf("run error: %v", err)
			}
		case "status":
			fmt.Printf("t=%dms pending=%d audited=%d dropped=%d overflows=%d\n",
				queue.Now(), queue.Len(), ring.Len(), ring.Dropped(), queue.Overflows())
		default:
			log.Printf("unknown command %q", fields[0])
		}
	}
}

// #endregion main

// #region commands

func handleStim(queue *sched.Queue, model *fiber.Model, deliver func(int64, fiber.SensorySample), args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: stim <stimulus> <fiber> <intensity> <distance_cm>")
	}
	intensity, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("bad intensity %q: %w", args[2], err)
	}
	distance, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("bad distance %q: %w", args[3], err)
	}

	sample := fiber.SensorySample{
		Class:            fiber.FiberClass(args[1]),
		Stimulus:         fiber.StimulusType(args[0]),
		Intensity:        intensity,
		SourceDistanceCM: distance,
	}

	delay, err := model.DelayMS(sample.Class, sample.SourceDistanceCM)
	if err != nil {
		return err
	}
	if _, err := model.Fire(queue, sample, 0, deliver); err != nil {
		return err
	}
	fmt.Printf("queued %s on %s, arrives in ~%.0fms\n", sample.Stimulus, sample.Class, delay)
	return nil
}

// handleDrive installs a repeating proprioceptive emission on the Ia_II
// pathway, modeling muscle-spindle background discharge.
func handleDrive(queue *sched.Queue, model *fiber.Model, deliver func(int64, fiber.SensorySample), args []string) (sched.EventID, error) {
	if len(args) != 3 {
		return 0, fmt.Errorf("usage: drive <interval_ms> <intensity> <distance_cm>")
	}
	interval, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad interval %q: %w", args[0], err)
	}
	intensity, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, fmt.Errorf("bad intensity %q: %w", args[1], err)
	}
	distance, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return 0, fmt.Errorf("bad distance %q: %w", args[2], err)
	}

	sample := fiber.SensorySample{
		Class:            fiber.FiberIaII,
		Stimulus:         fiber.StimulusProprio,
		Intensity:        intensity,
		SourceDistanceCM: distance,
	}

	id, err := queue.ScheduleRepeating(interval, 0, func(int64) {
		if _, fireErr := model.Fire(queue, sample, 0, deliver); fireErr != nil {
			log.Printf("drive emission dropped: %v", fireErr)
		}
	})
	if err != nil {
		return 0, err
	}
	fmt.Printf("drive installed: %s every %dms\n", sample.Class, interval)
	return id, nil
}

func handleRun(queue *sched.Queue, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: run <ms>")
	}
	ms, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", args[0], err)
	}

	fired, err := queue.RunUntil(queue.Now() + ms)
	if err != nil {
		return err
	}
	fmt.Printf("t=%dms fired=%d pending=%d\n", queue.Now(), fired, queue.Len())
	return nil
}

func printRecord(rec audit.Record) {
	switch {
	case rec.RejectReason != "":
		fmt.Printf("[%dms] %s/%s rejected: %s\n", rec.TickTime, rec.Stimulus, rec.Fiber, rec.RejectReason)
	case rec.NoOp:
		fmt.Printf("[%dms] %s/%s sub-threshold\n", rec.TickTime, rec.Stimulus, rec.Fiber)
	case rec.OverrideApplied:
		fmt.Printf("[%dms] %s suppressed by override (severity=%s)\n", rec.TickTime, rec.Reflex, rec.Severity)
	case rec.CooldownApplied:
		fmt.Printf("[%dms] %s in cooldown (severity=%s)\n", rec.TickTime, rec.Reflex, rec.Severity)
	default:
		fmt.Printf("[%dms] %s severity=%s pool=%s units=%d",
			rec.TickTime, rec.Reflex, rec.Severity, rec.Pool, len(rec.MotorUnitsFired))
		if rec.SuppressedPool != "" {
			fmt.Printf(" suppressed=%s", rec.SuppressedPool)
		}
		fmt.Println()
	}
}

// #endregion commands

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
