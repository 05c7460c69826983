package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-ledger/internal/config"
	"parking-ledger/internal/db"
	"parking-ledger/internal/logging"
	"parking-ledger/internal/parking"
	"parking-ledger/internal/server"
	sqlitestore "parking-ledger/internal/store/sqlite"
)

var mode = flag.String("mode", "server", "Mode to run: cli, server, or both")

func main() {
	flag.Parse()

	cfg := config.FromEnv()
	logging.Init(cfg.Env == "dev")
	log := logging.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer conn.Close()

	writer := db.NewWorker(conn)
	defer writer.Close()

	gateway := sqlitestore.NewSnapshotStore(conn, writer)

	ledger := parking.NewLedger(cfg.Capacity)
	tariff := parking.Tariff{HourlyRate: cfg.HourlyRate, BaseFee: cfg.BaseFee}
	service := parking.NewService(ledger, tariff, gateway)
	service.Restore(ctx)

	instrumented, err := parking.NewInstrumentedService(service, telemetryProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to instrument service")
	}

	log.Info().
		Int("capacity", cfg.Capacity).
		Str("hourly_rate", cfg.HourlyRate.StringFixed(2)).
		Int("available", service.AvailableSlots()).
		Msg("parking ledger ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, instrumented, telemetryProvider, sigChan)
	case "server":
		runServer(ctx, cancel, cfg.HTTPAddr, instrumented, telemetryProvider, sigChan)
	case "both":
		runBoth(ctx, cancel, cfg.HTTPAddr, instrumented, telemetryProvider, sigChan)
	default:
		log.Fatal().Str("mode", *mode).Msg("invalid mode, must be cli, server, or both")
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, svc *parking.InstrumentedService, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Logger().Info().Msg("shutting down")
		cancel()
	}()

	shell := parking.NewShell(svc)
	shell.Run(ctx)

	shutdownTelemetry(telemetryProvider)
}

func runServer(ctx context.Context, cancel context.CancelFunc, addr string, svc *parking.InstrumentedService, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(addr, svc)

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		logging.Logger().Error().Err(err).Msg("server error")
	}

	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, addr string, svc *parking.InstrumentedService, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(addr, svc)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan bool, 1)
	go func() {
		shell := parking.NewShell(svc)
		shell.Run(ctx)
		cliDone <- true
	}()

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && err != http.ErrServerClosed {
			logging.Logger().Error().Err(err).Msg("server error")
		}
	case <-cliDone:
		logging.Logger().Info().Msg("CLI exited")
	case <-ctx.Done():
	}

	shutdownTelemetry(telemetryProvider)
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("error shutting down telemetry")
	}
}
