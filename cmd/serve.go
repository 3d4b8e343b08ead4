package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccsim/castersim/engine"
	"github.com/ccsim/castersim/internal/restapi"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a cast sequence while exposing the REST surface",
	Run: func(cmd *cobra.Command, args []string) {
		log := setupLogger()
		caster, tracking, publisher, _ := buildSimulation(log)

		store := restapi.NewStore()
		server := restapi.NewServer(store, log)
		httpServer := &http.Server{Addr: listenAddr, Handler: server}

		go func() {
			log.Infof("REST surface listening on %s", listenAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("REST surface stopped: %v", err)
			}
		}()

		finished := false
		tracking.Subscribe(engine.EventCastingFinished, func(any) { finished = true })

		if err := tracking.Start(); err != nil {
			log.Fatalf("starting sequence: %v", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		for !finished {
			select {
			case <-sigCh:
				log.Info("received shutdown signal")
				finished = true
			default:
			}
			if finished {
				break
			}

			caster.Tick()
			publisher.Tick()
			store.ReplaceHeatSchedule(heatSlice(tracking))
			store.ReplaceCutSchedule(tracking.Sequence.CutProducts)
			store.ReplaceProducts(tracking.Sequence.Products.Snapshot())

			time.Sleep(time.Second)
		}

		tracking.Dispose()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
		log.Info("casting sequence complete")
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "REST surface listen address")
}

func heatSlice(tracking *engine.Tracking) []*engine.Heat {
	out := make([]*engine.Heat, 0, len(tracking.Sequence.Heats))
	for _, heat := range tracking.Sequence.Heats {
		out = append(out, heat)
	}
	return out
}
