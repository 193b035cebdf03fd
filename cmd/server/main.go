package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smlmotors/showroom/internal/server"
	"github.com/smlmotors/showroom/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "showroom-server",
	Short:   "Showroom dealership API server",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var config server.Config
		if err := viper.Unmarshal(&config); err != nil {
			return err
		}

		s, err := server.New(&config)
		if err != nil {
			return err
		}

		cmd.SilenceUsage = true
		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("config", "c", "", "Path to a config file")
	rootCmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	rootCmd.Flags().StringP("db", "d", "showroom.db", "Path to the local database file")
}

func loadConfig(cmd *cobra.Command) error {
	// .env is optional; real deployments inject env vars directly
	_ = godotenv.Load()

	viper.SetEnvPrefix("SHOWROOM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("http.addr", server.DefaultAddr)
	viper.SetDefault("db_path", "showroom.db")
	viper.SetDefault("blob.region", "us-east-1")
	viper.SetDefault("auth.admin_username", "admin")
	viper.SetDefault("auth.token_issuer", "showroom")
	viper.SetDefault("auth.token_expiry", 24*time.Hour)

	if addr, _ := cmd.Flags().GetString("bind"); addr != "" && cmd.Flags().Changed("bind") {
		viper.Set("http.addr", addr)
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" && cmd.Flags().Changed("db") {
		viper.Set("db_path", db)
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	return nil
}

func setupLogger() {
	w := os.Stdout
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		NoColor:    !isatty.IsTerminal(w.Fd()),
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	setupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("exit", "error", err)
		os.Exit(1)
	}
}
