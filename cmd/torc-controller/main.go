// Command torc-controller brings up DNS infrastructure on a private
// Mesos cluster: it reads a configuration document, subscribes to the
// cluster master as a framework, and supervises the declared services
// for the life of the process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/google/uuid"
	mesos "github.com/mesos/mesos-go/mesosproto"
	mesosscheduler "github.com/mesos/mesos-go/scheduler"
	"github.com/spf13/cobra"

	"github.com/att-innovate/torc-controller/pkg/api"
	"github.com/att-innovate/torc-controller/pkg/config"
	"github.com/att-innovate/torc-controller/pkg/health"
	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/registry"
	"github.com/att-innovate/torc-controller/pkg/scheduler"
	"github.com/att-innovate/torc-controller/pkg/state"
)

const (
	defaultConfigPath   = "./config/config.yml"
	defaultHealthPoll   = 30 * time.Second
	defaultStatesync    = 60 * time.Second
	adminListenAddr     = "0.0.0.0:3005"
	frameworkUser       = ""
	frameworkCheckpoint = true
)

var (
	masterFlag     string
	controllerFlag string
	configFlag     string
	logLevelFlag   string
	logJSONFlag    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "torc-controller",
	Short: "Launches and supervises DNS infrastructure on a Mesos cluster",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&masterFlag, "master", "", "cluster master IP (required)")
	rootCmd.Flags().StringVar(&controllerFlag, "controller", "", "external registry host (defaults to master)")
	rootCmd.Flags().StringVar(&configFlag, "config", defaultConfigPath, "path to the configuration document")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&logJSONFlag, "log-json", false, "emit JSON logs instead of console output")
	_ = rootCmd.MarkFlagRequired("master")
}

func run(cmd *cobra.Command, args []string) error {
	log.Init(log.Config{Level: log.Level(logLevelFlag), JSONOutput: logJSONFlag})
	logger := log.WithComponent("main")

	controllerHost := controllerFlag
	if controllerHost == "" {
		controllerHost = masterFlag
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registryClient := registry.New(fmt.Sprintf("http://%s", controllerHost))

	actor := state.New(registryClient)
	go actor.Run(ctx)
	stateClient := actor.Client(masterFlag)

	for _, node := range cfg.Nodes() {
		stateClient.AddNode(node)
	}

	syncInterval := defaultStatesync
	if s := cfg.StatesyncPollIntervalSeconds(); s > 0 {
		syncInterval = time.Duration(s) * time.Second
	}
	syncer := registry.NewSyncer(stateClient, registryClient, syncInterval)
	go syncer.Run(ctx)

	healthInterval := defaultHealthPoll
	if s := cfg.HealthPollIntervalSeconds(); s > 0 {
		healthInterval = time.Duration(s) * time.Second
	}
	supervisor := health.New(stateClient, healthInterval, cfg.SystemServiceTasks(), cfg.Nodes())
	go supervisor.Run(ctx)

	adminServer := api.New(stateClient, cfg)
	go func() {
		if err := adminServer.ListenAndServe(adminListenAddr); err != nil {
			logger.Error().Err(err).Msg("admin surface stopped")
		}
	}()

	frameworkID := fmt.Sprintf("%s-%s", cfg.FrameworkName(), uuid.New().String())
	sched := scheduler.New(stateClient)

	driverConfig := mesosscheduler.DriverConfig{
		Scheduler: sched,
		Framework: &mesos.FrameworkInfo{
			User:       proto.String(frameworkUser),
			Name:       proto.String(cfg.FrameworkName()),
			Id:         &mesos.FrameworkID{Value: proto.String(frameworkID)},
			Checkpoint: proto.Bool(frameworkCheckpoint),
		},
		Master: masterFlag,
	}

	driver, err := mesosscheduler.NewMesosSchedulerDriver(driverConfig)
	if err != nil {
		return fmt.Errorf("building scheduler driver: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info().Msg("shutting down")
		cancel()
		driver.Stop(false)
	}()

	logger.Info().Str("master", masterFlag).Str("framework_id", frameworkID).Msg("subscribing to cluster master")
	if status, err := driver.Run(); err != nil {
		return fmt.Errorf("scheduler driver exited with status %v: %w", status, err)
	}

	return nil
}
