package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sts10/phraze/internal/client"
	"github.com/sts10/phraze/internal/proptest"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Start a continuous testing workload",
	Long:  "Start a continuous testing workload. The workload runs indefinitely, sending random concurrent requests to a passphrase service and verifying that every response has the requested shape and the planned number of words.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags(), slog.LevelInfo)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		serviceAddr := orFatal(cmd.Flags().GetString("addr"))
		addr, err := net.ResolveTCPAddr("tcp", serviceAddr)
		if err != nil {
			logger.Error("resolve service addr failed", "service_addr", serviceAddr, "err", err)
			os.Exit(1)
		}
		logger.Info("resolved service addr", "service_addr", addr)
		pause := orFatal(cmd.Flags().GetDuration("pause"))

		pinger := dial(logger, addr) // blocks until the service is ready
		defer pinger.Close()
		logger.Info("setup complete", "service_addr", addr)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		for round := 1; ; round++ {
			select {
			case <-sig:
				os.Exit(0)
			default:
				loadAndVerify(logger.With("round", round), addr)
				time.Sleep(pause)
			}
		}
	},
}

func loadAndVerify(logger *slog.Logger, addr net.Addr) {
	// Generate a randomized workload.
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	batches := proptest.GenRequests(r)

	// Run the workload, checking every response as it arrives.
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	start := make(chan struct{})
	for _, batch := range batches {
		wg.Go(func() {
			c := dial(logger, addr)
			defer c.Close()
			<-start
			if err := proptest.RunRequests(c, batch); err != nil {
				logger.Error("check failed", "err", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		})
	}
	close(start)
	wg.Wait()

	if failed > 0 {
		logger.Error("workload failed", "clients", len(batches), "failed_clients", failed)
		return
	}
	logger.Info("workload passed", "clients", len(batches))
}

func dial(logger *slog.Logger, addr net.Addr) *client.Client {
	var usable *client.Client
	for {
		c, err := client.New(addr)
		if err != nil {
			logger.Debug("dial failed", "retry_after", time.Second, "err", err)
			time.Sleep(time.Second)
			continue
		}
		usable = c
		break
	}
	for {
		err := usable.Ping()
		if err != nil {
			logger.Debug("ping failed", "retry_after", time.Second, "err", err)
			time.Sleep(time.Second)
			continue
		}
		return usable
	}
}

func init() {
	rootCmd.AddCommand(workloadCmd)

	workloadCmd.Flags().String("addr", "localhost:6379", "passphrase service address")
	workloadCmd.Flags().Duration("pause", time.Second, "pause between rounds")
}
