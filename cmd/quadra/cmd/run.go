package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"quadrafund.io/quadra/cmd/quadra/common"
	"quadrafund.io/quadra/lib/api"
	quadracommon "quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/metrics"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/strategy"
)

const defaultBind string = "0.0.0.0:12480"
const defaultLogLevel logging.Lvl = logging.LvlInfo
const defaultHistorySize int = 500

var (
	runCmd *cobra.Command

	flagBind      string = quadracommon.GetENVValue("QUADRA_BIND", defaultBind)
	flagStorage   string
	flagLogLevel  string = quadracommon.GetENVValue("QUADRA_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput string = quadracommon.GetENVValue("QUADRA_LOG_OUTPUT", "")

	logLevel logging.Lvl
	log      logging.Logger
)

func init() {
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the quadra API server",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsRun()

			runServer()
		},
	}

	var currentDirectory string
	currentDirectory, err := os.Getwd()
	if err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorage = quadracommon.GetENVValue("QUADRA_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on")
	runCmd.Flags().StringVar(&flagStorage, "storage", flagStorage, "storage uri")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")

	rootCmd.AddCommand(runCmd)
}

func parseFlagsRun() {
	var err error

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(runCmd, "--log-level", err)
	}

	logHandler := logging.StdoutHandler
	if len(flagLogOutput) > 0 {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(runCmd, "--log-output", err)
		}
	}
	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	quadracommon.SetLogging(logLevel, logHandler)
	strategy.SetLogging(logLevel, logHandler)

	log.Info("Starting quadra")
	log.Debug(
		"parsed flags:",
		"\n\tbind", flagBind,
		"\n\tstorage", flagStorage,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
	)
}

func runServer() {
	metrics.InitPrometheusMetrics()

	storageConfig, err := storage.NewConfigFromString(flagStorage)
	if err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	history, err := api.NewVoteHistory(defaultHistorySize)
	if err != nil {
		log.Crit("failed to initialize vote history", "error", err)

		os.Exit(1)
	}
	history.Start()
	defer history.Stop()

	router := mux.NewRouter()
	api.NewNetworkHandlerAPI(st, history).AddAPIHandlers(router)
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    flagBind,
		Handler: handlers.CombinedLoggingHandler(os.Stdout, router),
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", flagBind)
			return server.ListenAndServe()
		}, func(error) {
			server.Shutdown(context.Background())
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
