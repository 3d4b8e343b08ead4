package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccsim/castersim/engine"
	"github.com/ccsim/castersim/telemetry"
)

var (
	realtimeTick bool
	maxTicks     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one cast sequence to completion",
	Run: func(cmd *cobra.Command, args []string) {
		log := setupLogger()
		runSequence(log, realtimeTick, maxTicks)
	},
}

func init() {
	runCmd.Flags().BoolVar(&realtimeTick, "realtime", false, "Sleep one second between ticks instead of running at full speed")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "Stop after this many ticks even if casting has not finished (0 = unlimited)")
}

// buildSimulation loads config and catalog, builds a fresh sequence, and
// wires a Caster/Tracking pair ready to run. Shared by the run and serve
// commands.
func buildSimulation(log *logrus.Logger) (*engine.Caster, *engine.Tracking, *telemetry.Publisher, *telemetry.MemorySink) {
	cfg, err := engine.LoadEngineConfig(configPath)
	if err != nil {
		log.Fatalf("loading engine config: %v", err)
	}

	catalog, err := engine.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("loading steel-grade catalog: %v", err)
	}

	rng := engine.NewPartitionedRNG(engine.NewSimulationKey(time.Now().UnixNano()))

	seq, err := engine.BuildSequence(catalog, rng, cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity, cfg.Caster.TorchLocationMeters, time.Now())
	if err != nil {
		log.Fatalf("building sequence: %v", err)
	}

	caster := engine.NewCaster(*cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	tracking := engine.NewTracking(seq, caster, catalog, rng, 30, time.Now)

	publisher := telemetry.NewPublisher(log)
	publisher.AddSink(telemetry.NewLogSink(log))
	memSink := telemetry.NewMemorySink()
	publisher.AddSink(memSink)
	engine.RegisterOverviewMetrics(publisher, caster, tracking)

	return caster, tracking, publisher, memSink
}

// runSequence drives the simulation's 1Hz tick loop until CastingFinished
// or maxTicks is reached (spec.md §5 "no cancellation token crosses the
// sequence boundary; completion is signalled by CastingFinished").
func runSequence(log *logrus.Logger, realtime bool, maxTicks int) {
	caster, tracking, publisher, _ := buildSimulation(log)

	finished := false
	tracking.Subscribe(engine.EventCastingFinished, func(any) { finished = true })

	if err := tracking.Start(); err != nil {
		log.Fatalf("starting sequence: %v", err)
	}

	for tick := 0; !finished; tick++ {
		if maxTicks > 0 && tick >= maxTicks {
			log.Warn("stopping: max-ticks reached before casting finished")
			break
		}
		caster.Tick()
		publisher.Tick()
		if realtime {
			time.Sleep(time.Second)
		}
	}

	tracking.Dispose()
	log.Info("casting sequence complete")
}
