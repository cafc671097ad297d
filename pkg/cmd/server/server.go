package server

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // profiling is opt-in via flag
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/trackday-instructions/log"
	"github.com/mpapenbr/trackday-instructions/pkg/api"
	"github.com/mpapenbr/trackday-instructions/pkg/config"
	"github.com/mpapenbr/trackday-instructions/pkg/db/postgres"
	"github.com/mpapenbr/trackday-instructions/pkg/document"
	"github.com/mpapenbr/trackday-instructions/pkg/service"
	"github.com/mpapenbr/trackday-instructions/pkg/utils"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "starts the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"server-addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format")
	cmd.Flags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules applied to the logger")
	cmd.Flags().StringVar(&config.DateLocale,
		"date-locale",
		"en-US",
		"locale used for rendered dates (BCP-47 tag)")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")
	cmd.Flags().IntVar(&config.ProfilingPort,
		"profiling-port",
		0,
		"port to use for providing profiling data")
	cmd.Flags().StringVar(&config.TLSCertFile,
		"tls-cert",
		"",
		"file containing the TLS certificate")
	cmd.Flags().StringVar(&config.TLSKeyFile,
		"tls-key",
		"",
		"file containing the TLS private key")
	cmd.Flags().StringVar(&config.TLSCAFile,
		"tls-ca",
		"",
		"file containing the TLS root CA")
	cmd.Flags().StringVar(&config.TraefikCerts,
		"traefik-certs",
		"",
		"traefik acme.json containing the certificates")
	cmd.Flags().StringVar(&config.TraefikCertDomain,
		"traefik-cert-domain",
		"",
		"domain to pick from the traefik certificates")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

//nolint:funlen,cyclop // startup sequence
func startServer() error {
	var logger *log.Logger
	var sqlLogger *log.Logger
	var telemetry *config.Telemetry
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilter != "" {
		logger = logger.WithFilterRules(config.LogFilter)
	}

	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("db", config.DB),
		log.String("addr", config.ServerAddr),
		log.String("dateLocale", config.DateLocale),
	)

	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // localhost only
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}

	waitForRequiredServices()

	pgTraceOption := postgres.WithTracer(sqlLogger, log.DebugLevel)
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		var err error
		if telemetry, err = config.SetupTelemetry(context.Background()); err == nil {
			pgTraceOption = postgres.WithOtlpTracer()
		} else {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	log.Info("Starting server")
	pool := postgres.InitWithURL(
		config.DB,
		pgTraceOption,
	)

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	tracks := service.NewTrackService(pool)
	instructions := service.NewInstructionService(pool, tracks,
		document.NewRenderer(document.WithLocale(config.DateLocale)))
	srv := api.NewServer(tracks, instructions,
		api.WithAddr(config.ServerAddr),
		api.WithTLSConfig(NewTLSConfigProvider(serverCtx)),
		api.WithLogger(logger.Named("api")))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()
	setupGoRoutinesDump()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case err := <-errChan:
		log.Error("server could not be started", log.ErrorField(err))
		return err
	case v := <-sigChan:
		log.Debug("Got signal ", log.Any("signal", v))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", log.ErrorField(err))
	}
	if telemetry != nil {
		telemetry.Shutdown()
	}
	postgres.CloseDb()

	log.Info("Server terminated")
	return nil
}

func setupGoRoutinesDump() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			fmt.Printf("=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n",
				buf[:stacklen])
		}
	}()
}

func waitForRequiredServices() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}

	wg := sync.WaitGroup{}
	checkTCP := func(addr string) {
		if err = utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
		wg.Done()
	}

	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		wg.Add(1)
		go checkTCP(postgresAddr)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}
