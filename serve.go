package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	restapi "github.com/hedisam/txchain/api/rest"
	"github.com/hedisam/txchain/internal/feed"
	"github.com/hedisam/txchain/internal/ledger"
	"github.com/hedisam/txchain/internal/service"
	"github.com/hedisam/txchain/internal/store/memdb"
)

type Options struct {
	ServerAddr     string
	GenesisFile    string
	FeedBacklog    uint
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
	Verbose        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := Options{
			ServerAddr:     viper.GetString("server-addr"),
			GenesisFile:    viper.GetString("genesis-file"),
			FeedBacklog:    viper.GetUint("feed-backlog"),
			RateLimitRPS:   viper.GetFloat64("rate-limit-rps"),
			RateLimitBurst: viper.GetInt("rate-limit-burst"),
			CORSOrigins:    viper.GetStringSlice("cors-origins"),
			Verbose:        viper.GetBool("verbose"),
		}
		err := ensureValidOpts(opts)
		if err != nil {
			return err
		}

		return serve(cmd.Context(), opts)
	},
}

func init() {
	serveCmd.Flags().String("server-addr", "localhost:3042", "Server addr to serve the http server on")
	serveCmd.Flags().String("genesis-file", "", "JSON file holding the initial transactions, the ledger starts empty if not set")
	serveCmd.Flags().Uint("feed-backlog", feed.DefaultBacklog, "Number of recent transactions replayed to new stream clients. Cannot be less than 1")
	serveCmd.Flags().Float64("rate-limit-rps", 10, "Sustained /send requests per second allowed per client IP")
	serveCmd.Flags().Int("rate-limit-burst", 20, "Burst of /send requests allowed per client IP. Cannot be less than 1")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "Allowed CORS origins, * allows any")
}

func serve(ctx context.Context, opts Options) error {
	if !opts.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	recordStore := memdb.NewRecordStore()
	recordFeed := feed.New(logger, feed.WithBacklog(opts.FeedBacklog))
	ledgerService := service.New(logger, recordStore, recordFeed)

	if opts.GenesisFile != "" {
		genesis, err := loadGenesis(opts.GenesisFile)
		if err != nil {
			return err
		}
		err = ledgerService.Seed(ctx, genesis...)
		if err != nil {
			return fmt.Errorf("could not seed ledger: %w", err)
		}
	}

	router := restapi.NewRouter(
		ctx,
		logger,
		restapi.NewServer(logger, ledgerService),
		restapi.NewStreamHandler(logger, recordFeed, restapi.CheckOrigin(opts.CORSOrigins)),
		restapi.RouterConfig{
			CORSOrigins:    opts.CORSOrigins,
			RateLimitRPS:   opts.RateLimitRPS,
			RateLimitBurst: opts.RateLimitBurst,
		},
	)

	mustListenAndServe(ctx, logger, opts.ServerAddr, router)
	return nil
}

func loadGenesis(path string) ([]ledger.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read genesis file: %w", err)
	}

	var records []ledger.Record
	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("could not decode genesis file %q: %w", path, err)
	}

	return records, nil
}

func mustListenAndServe(ctx context.Context, logger *logrus.Logger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		// stream connections are hijacked and outlive Shutdown, so they follow ctx instead
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.WithField("addr", addr).Info("Serving server...")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed with error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
	}
}

func ensureValidOpts(opts Options) error {
	if opts.ServerAddr == "" {
		return errors.New("--server-addr is required")
	}
	if opts.FeedBacklog < 1 {
		return errors.New("--feed-backlog is too small, it cannot be less than 1")
	}
	if opts.RateLimitRPS <= 0 {
		return errors.New("--rate-limit-rps must be positive")
	}
	if opts.RateLimitBurst < 1 {
		return errors.New("--rate-limit-burst is too small, it cannot be less than 1")
	}
	return nil
}
