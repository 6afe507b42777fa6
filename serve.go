package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/listsource"
	"github.com/sts10/phraze/internal/server"
	"github.com/sts10/phraze/internal/wordlist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the passphrase service",
	Long: `Start the passphrase service.

The service speaks RESP, so any Valkey or Redis client can use it:

  GENERATE [LIST code] [WORDS n] [ENTROPY bits] [STRENGTH n] [SEP s] [TITLE] [COUNT n]
  ENTROPY [LIST code] [WORDS n] [ENTROPY bits] [STRENGTH n]
  LISTS
  PING
  QUIT`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags(), slog.LevelInfo)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg := orFatal(config.Load())
		flags := cmd.Flags()

		srvCfg := server.Config{
			DefaultList: flagOrEnv(flags, "list", cfg.List, choiceGetter(flags)),
			Separator:   flagOrEnv(flags, "sep", cfg.Separator, flags.GetString),
			MaxCount:    flagOrEnv(flags, "max-count", cfg.Serve.MaxCount, flags.GetInt),
			MaxWords:    flagOrEnv(flags, "max-words", cfg.Serve.MaxWords, flags.GetInt),
		}
		if ref := orFatal(flags.GetString("custom-list")); ref != "" {
			custom, err := listsource.Load(cmd.Context(), ref, cfg.S3)
			if err != nil {
				logger.Error("load custom list failed", "source", ref, "err", err)
				os.Exit(1)
			}
			if w := custom.Warning(); w != nil {
				logger.Warn("custom list mixes normalization forms", "source", ref, "forms", w.Forms)
			}
			logger.Info("loaded custom list", "source", ref, "words", custom.Len(), "dropped_lines", custom.Dropped())
			srvCfg.Custom = custom
		}
		srv := server.New(srvCfg, logger)

		addr := flagOrEnv(flags, "addr", cfg.Serve.Addr, flags.GetString)
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("listen failed", "addr", addr, "err", err)
			os.Exit(1)
		}

		var wg sync.WaitGroup
		wg.Go(func() {
			logger.Info("starting server", "addr", ln.Addr())
			if err := srv.ServeTCP(ln); err != nil {
				logger.Error("serve failed", "err", err)
			}
		})
		defer func() {
			if err := srv.Close(); err != nil {
				logger.Error("close failed", "err", err)
				os.Exit(1)
			}
			wg.Wait()
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("addr", ":6379", "address to listen on")
	flags.Int("max-count", server.DefaultMaxCount, "maximum passphrases per request")
	flags.Int("max-words", server.DefaultMaxWords, "maximum words per passphrase")
	flags.StringP("sep", "s", "-", "separator for requests without SEP")
	list := wordlist.Default
	flags.VarP(&list, "list", "l", "default word list code")
	flags.StringP("custom-list", "c", "", "serve a custom list from a file or s3://bucket/key as the default")
	serveCmd.MarkFlagsMutuallyExclusive("list", "custom-list")
}
