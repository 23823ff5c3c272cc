package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/server"
	"github.com/libris-io/libris/store"
	"github.com/libris-io/libris/store/db"
	"github.com/libris-io/libris/worker"
)

const (
	greetingBanner = `
██      ██ ██████  ██████  ██ ███████
██      ██ ██   ██ ██   ██ ██ ██
██      ██ ██████  ██████  ██ ███████
██      ██ ██   ██ ██   ██ ██      ██
███████ ██ ██████  ██   ██ ██ ███████
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "libris",
		Short: "Libris is a library-management record keeper",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if _, err := config.GetConfig(); err != nil {
				fmt.Println("Error loading config:", err)
				os.Exit(1)
			}
			if configFile != "" {
				if _, err := config.ParseFile(configFile); err != nil {
					fmt.Println("Error parsing config file:", err)
					os.Exit(1)
				}
			}
			log.Logger = log.NewLogger()
			defer log.Logger.Sync()

			database, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(database.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			pool := worker.NewPool(s, config.Opts.WorkerPoolSize)
			scheduler := worker.NewScheduler(s, pool, time.Duration(config.Opts.DebtorScanInterval)*time.Minute)
			scheduler.Start(ctx)

			httpServer, err := server.StartServer(ctx, s)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}
			fmt.Printf("%s\n", greetingBanner)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (TOML)")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
