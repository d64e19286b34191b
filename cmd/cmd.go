// Package cmd hosts the root command that starts the server.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recallhq/recall/internal/profile"
	"github.com/recallhq/recall/server"
	"github.com/recallhq/recall/internal/observability"
	"github.com/recallhq/recall/store"
	"github.com/recallhq/recall/store/db"
)

const (
	greetingBanner = `recall - spaced repetition with a tutor in the loop`
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "A spaced repetition learning server",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:              viper.GetString("mode"),
			Addr:              viper.GetString("addr"),
			Port:              viper.GetInt("port"),
			Data:              viper.GetString("data"),
			Driver:            viper.GetString("driver"),
			DSN:               viper.GetString("dsn"),
			Version:           version,
			RephraseQuestions: viper.GetBool("rephrase-questions"),
			LLMProvider:       viper.GetString("llm-provider"),
			GeminiAPIKey:      viper.GetString("gemini-api-key"),
			GeminiModel:       viper.GetString("gemini-model"),
			OpenAIAPIKey:      viper.GetString("openai-api-key"),
			OpenAIModel:       viper.GetString("openai-model"),
			OllamaBaseURL:     viper.GetString("ollama-base-url"),
			OllamaModel:       viper.GetString("ollama-model"),
			LLMTimeout:        viper.GetDuration("llm-timeout"),
		}
		if err := instanceProfile.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}

		observability.SetupLogging(instanceProfile.Mode)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", "error", err)
			os.Exit(1)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		s, err := server.NewServer(instanceProfile, storeInstance)
		if err != nil {
			slog.Error("failed to create server", "error", err)
			os.Exit(1)
		}

		fmt.Println(greetingBanner)
		fmt.Printf("version %s, mode %s, driver %s\n", version, instanceProfile.Mode, instanceProfile.Driver)

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}

		// Signal received; drain in-flight requests before exiting.
		s.Shutdown(context.Background())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8082)
	viper.SetDefault("data", ".")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("rephrase-questions", true)
	viper.SetDefault("llm-provider", "gemini")
	viper.SetDefault("llm-timeout", 30*time.Second)

	rootCmd.PersistentFlags().String("mode", "dev", `server mode, can be "dev" or "prod"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8082, "port of the server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (file path or connection string)")
	rootCmd.PersistentFlags().Bool("rephrase-questions", true, "reword questions on delivery via the LLM")
	rootCmd.PersistentFlags().String("llm-provider", "gemini", `LLM provider, can be "gemini", "openai" or "ollama"`)
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key (or RECALL_GEMINI_API_KEY)")
	rootCmd.PersistentFlags().String("gemini-model", "", "Gemini model name")
	rootCmd.PersistentFlags().String("openai-api-key", "", "OpenAI API key (or RECALL_OPENAI_API_KEY)")
	rootCmd.PersistentFlags().String("openai-model", "", "OpenAI model name")
	rootCmd.PersistentFlags().String("ollama-base-url", "", "Ollama OpenAI-compatible base URL")
	rootCmd.PersistentFlags().String("ollama-model", "", "Ollama model name")
	rootCmd.PersistentFlags().Duration("llm-timeout", 30*time.Second, "timeout per LLM call")

	for _, flag := range []string{
		"mode", "addr", "port", "data", "driver", "dsn", "rephrase-questions",
		"llm-provider", "gemini-api-key", "gemini-model", "openai-api-key", "openai-model",
		"ollama-base-url", "ollama-model", "llm-timeout",
	} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("recall")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
