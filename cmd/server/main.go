package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Skufu/cardiorisk/internal/config"
	"github.com/Skufu/cardiorisk/internal/logging"
	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/predictor"
	"github.com/Skufu/cardiorisk/internal/present"
	"github.com/Skufu/cardiorisk/internal/validation"
	"github.com/Skufu/cardiorisk/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "cardiorisk",
		Short:        "Cardiovascular risk assessment front end",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("api-url", predictor.DefaultBaseURL, "prediction service base URL")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(assessCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
	cmd.Flags().String("port", "8080", "listen port")
	return cmd
}

func runServer(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	client := newClient(cfg)
	srv := web.NewServer(client, logger, web.Options{
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		SessionTTL:   cfg.SessionTTL,
		MaxSessions:  cfg.MaxSessions,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	srv.CheckUpstream(ctx)
	cancel()

	// Form posts wait on the prediction service before redirecting.
	writeTimeout := 15 * time.Second
	if cfg.PredictorTimeout > 0 {
		writeTimeout += cfg.PredictorTimeout
	} else {
		writeTimeout = 0
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	logger.Info().
		Str("port", cfg.Port).
		Str("api_url", client.BaseURL()).
		Msg("server listening")
	return waitForShutdown(server, logger, serveErr)
}

func waitForShutdown(server *http.Server, logger zerolog.Logger, serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	logger.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the prediction service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			h, err := newClient(cfg).HealthCheck(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", h.Status)
			fmt.Fprintf(out, "models_loaded: %t\n", h.ModelsLoaded)
			if h.Timestamp != "" {
				fmt.Fprintf(out, "timestamp: %s\n", h.Timestamp)
			}
			return nil
		},
	}
}

func assessCmd() *cobra.Command {
	patient := model.DefaultPatient()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a single risk assessment and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := validation.Validate(patient); len(errs) > 0 {
				for _, f := range errs.Fields() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, errs[f])
				}
				return errors.New("invalid patient data")
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			resp, err := newClient(cfg).PredictRisk(cmd.Context(), patient)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			report := present.Build(*resp)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Prediction *model.PredictionResponse `json:"prediction"`
					Report     present.Report            `json:"report"`
				}{resp, report})
			}
			writeReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&patient.Age, "age", patient.Age, "age in years (18-100)")
	f.StringVar(&patient.Gender, "gender", patient.Gender, "Male or Female")
	f.StringVar(&patient.Smoking, "smoking", patient.Smoking, "Never, Former or Current")
	f.StringVar(&patient.AlcoholIntake, "alcohol-intake", patient.AlcoholIntake, "None, Light, Moderate or Heavy")
	f.Float64Var(&patient.ExerciseHours, "exercise-hours", patient.ExerciseHours, "exercise hours per week (0-24)")
	f.StringVar(&patient.Diabetes, "diabetes", patient.Diabetes, "Yes or No")
	f.StringVar(&patient.FamilyHistory, "family-history", patient.FamilyHistory, "Yes or No")
	f.StringVar(&patient.Obesity, "obesity", patient.Obesity, "Yes or No")
	f.IntVar(&patient.StressLevel, "stress-level", patient.StressLevel, "stress level (1-10)")
	f.BoolVar(&asJSON, "json", false, "print the prediction and report as JSON")
	return cmd
}

func newClient(cfg *config.Config) *predictor.Client {
	return predictor.New(cfg.APIURL, predictor.WithTimeout(cfg.PredictorTimeout))
}

func writeReport(w io.Writer, r present.Report) {
	fmt.Fprintf(w, "%s (%s)\n", r.Level, r.Meter.Label)
	fmt.Fprintf(w, "Intervalo de confianza: %s - %s (%d%% de certeza)\n",
		r.Interval.MinLabel(), r.Interval.MaxLabel(), r.Interval.Certainty)
	if r.Interval.Wide {
		fmt.Fprintln(w, "Nota: El rango es amplio, sugiriendo que sería beneficioso obtener más información clínica.")
	}

	fmt.Fprintln(w)
	if r.Factors.Empty {
		fmt.Fprintf(w, "%s %s\n", r.Factors.EmptyTitle, r.Factors.EmptyMessage)
	} else {
		fmt.Fprintf(w, "%s (%s)\n", r.Factors.Title(), r.Factors.Subtitle())
		for _, f := range r.Factors.Items {
			fmt.Fprintf(w, "  - %s: %s\n", f.Name, f.Description)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Recommendations.Header.Title)
	for _, it := range r.Recommendations.Items {
		fmt.Fprintf(w, "  [%s] %s\n", it.Category.Label, it.Text)
	}
	if n := r.Recommendations.Note; n != nil {
		fmt.Fprintf(w, "%s %s\n", n.Title, n.Body)
	}

	if r.Disclaimer != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Disclaimer)
	}
}
