package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/internal"
	"github.com/VivianChencwy/bikewatching/source"
	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

var (
	configPath   string
	systemName   string
	snapshotPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "bikewatch",
	Short: "Bikeshare station traffic by time of day",
	Long: `bikewatch loads a bikeshare system's station list and trip history and
reports departures, arrivals and total traffic per station within an hour
either side of a chosen time of day.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.InitLogging(verbose)
		if configPath != "" {
			return config.LoadAppConfigFrom(configPath)
		}
		return config.LoadAppConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yml or /etc/bikewatch/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&systemName, "system", "s", "", "system name from config.systems[] (default: first)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "gob snapshot to read instead of fetching feeds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log file and line numbers")

	rootCmd.AddCommand(serveCmd, trafficCmd, topCmd, snapshotCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// selectedSystem resolves --system against the loaded config
func selectedSystem() (config.System, error) {
	return config.SelectSystem(systemName)
}

// loadSnapshot reads the gob snapshot when one is configured and present, otherwise fetches every feed
func loadSnapshot(ctx context.Context) (*dataset.Snapshot, error) {
	path := snapshotPath
	if path == "" {
		path = config.Config.Snapshot.Path
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			snap, err := dataset.LoadFile(path)
			if err != nil {
				return nil, err
			}
			log.Printf("loaded snapshot %s from %s", snap.ID, path)
			return snap, nil
		} else if snapshotPath != "" {
			return nil, fmt.Errorf("snapshot %s: %w", path, err)
		}
	}

	sys, err := selectedSystem()
	if err != nil {
		return nil, err
	}
	return dataset.Load(ctx, source.NewClient(), sys, config.Config.Traffic.WindowMinutes)
}

// resolveMinute turns --minute/--at into a minute of day or traffic.NoFilter
func resolveMinute(minute int, at string) (int, error) {
	if at != "" {
		return utils.ParseClock(at)
	}
	if minute < traffic.NoFilter || minute >= traffic.MinutesPerDay {
		return 0, fmt.Errorf("--minute must be between -1 and %d", traffic.MinutesPerDay-1)
	}
	return minute, nil
}

func addTimeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("minute", traffic.NoFilter, "minute of day (0-1439), -1 for no filter")
	cmd.Flags().String("at", "", "time of day as HH:MM, overrides --minute")
}

func timeFlag(cmd *cobra.Command) (int, error) {
	minute, _ := cmd.Flags().GetInt("minute")
	at, _ := cmd.Flags().GetString("at")
	return resolveMinute(minute, at)
}
