package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/trogers1052/trade-journal-service/internal/api"
	"github.com/trogers1052/trade-journal-service/internal/config"
	"github.com/trogers1052/trade-journal-service/internal/kafka"
	"github.com/trogers1052/trade-journal-service/internal/sizer"
	"github.com/trogers1052/trade-journal-service/internal/store"
)

const (
	appName = "trade-journal"
	version = "v0.1.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Trade journal service with a position-sizing calculator",
		Version: version,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the journal HTTP API",
		RunE:  runServe,
	}

	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Compute a position size from risk parameters",
		RunE:  runSize,
	}
	sizeCmd.Flags().Float64("balance", 10000, "Account balance in dollars")
	sizeCmd.Flags().Float64("risk", 1, "Risk per trade as a percentage of balance")
	sizeCmd.Flags().Float64("entry", 0, "Entry price")
	sizeCmd.Flags().Float64("stop", 0, "Stop loss price")
	sizeCmd.Flags().Bool("short", false, "Size a short trade instead of a long")

	rootCmd.AddCommand(serveCmd, sizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local development convenience; deployments use real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx := context.Background()
	st := store.New(cfg.Firestore.DatabaseID, cfg.Firestore.Collection, credentialProviders(cfg)...)
	if err := st.Init(ctx); err != nil {
		// Keep serving; journal operations fail fast with an inline
		// message until credentials are fixed and the process restarted.
		log.Error().Err(err).Msg("starting without a usable trade store")
	}
	defer st.Close()

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).
			Msg("kafka producer enabled")
	}

	router := api.SetupRoutes(api.NewHandler(st, producer))
	log.Info().Str("addr", cfg.Server.Addr()).Msg("trade journal service listening")
	return http.ListenAndServe(cfg.Server.Addr(), router)
}

func credentialProviders(cfg *config.Config) []store.CredentialsProvider {
	providers := []store.CredentialsProvider{
		store.AmbientCredentials{ProjectID: cfg.Firestore.ProjectID},
	}

	key, err := cfg.Firestore.ServiceAccountKey()
	if err != nil {
		log.Warn().Err(err).Msg("service account key unavailable")
	}
	providers = append(providers, store.ServiceAccountSecret{JSON: key})

	return providers
}

func runSize(cmd *cobra.Command, args []string) error {
	balance, _ := cmd.Flags().GetFloat64("balance")
	risk, _ := cmd.Flags().GetFloat64("risk")
	entry, _ := cmd.Flags().GetFloat64("entry")
	stop, _ := cmd.Flags().GetFloat64("stop")
	short, _ := cmd.Flags().GetBool("short")

	result, err := sizer.Calculate(sizer.Request{
		AccountBalance: balance,
		RiskPercentage: risk,
		EntryPrice:     entry,
		StopLossPrice:  stop,
		IsLong:         !short,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Describe())
	if result.ExceedsBalance {
		fmt.Println("warning: total position value exceeds account balance; consider adjusting inputs or leverage")
	}
	return nil
}
