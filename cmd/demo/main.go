package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/comalice/micromodel"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	reg := prometheus.NewRegistry()
	metrics, err := micromodel.NewMetrics(reg)
	if err != nil {
		panic(err)
	}

	notifications := make(chan micromodel.Notification, 100)
	publisher := micromodel.NewChannelPublisher(notifications)

	Unit, err := micromodel.NewClassBuilder("Unit").
		Mixin(micromodel.WithModel, micromodel.WithEventEmitter).
		Mixin(micromodel.WithLogging(logger), micromodel.WithMetrics(metrics), micromodel.WithPublisher(publisher)).
		Predicate("isAlive", "life > 0").
		Default("life", 100).
		Build()
	if err != nil {
		panic(err)
	}

	unit, err := Unit.New(micromodel.Attributes{"name": "Marine"})
	if err != nil {
		panic(err)
	}

	life := 100
	src := micromodel.NewTickerPatchSource(500*time.Millisecond, func(time.Time) map[string]any {
		life -= 10
		return map[string]any{"life": life}
	})
	defer src.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := micromodel.Pipe(ctx, src, unit); err != nil && ctx.Err() == nil {
			fmt.Printf("Pipe error: %v\n", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("DOT:\n" + Unit.DOT())

	cycles := 0
	for {
		select {
		case n := <-notifications:
			cycles++
			alive, _ := unit.CallBool("isAlive")
			fmt.Printf("--- Change %d --- %s changed=%v life=%v alive=%v\n",
				cycles, n.ModelID, n.Changed, n.Attributes["life"], alive)
			if !alive {
				fmt.Printf("Demo complete: %v changes recorded.\n",
					testutil.ToFloat64(metrics.Changes.WithLabelValues(Unit.Name())))
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
