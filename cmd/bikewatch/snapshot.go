package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/source"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch every feed and write a gob snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = config.Config.Snapshot.Path
		}
		if out == "" {
			return fmt.Errorf("must specify an output file using --out")
		}

		sys, err := selectedSystem()
		if err != nil {
			return err
		}
		snap, err := dataset.Load(cmd.Context(), source.NewClient(), sys, config.Config.Traffic.WindowMinutes)
		if err != nil {
			return err
		}
		if err := dataset.SaveFile(snap, out); err != nil {
			return err
		}
		fmt.Printf("wrote snapshot %s (%d stations, %d trips) to %s\n", snap.ID, len(snap.Stations), len(snap.Trips), out)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringP("out", "o", "", "output file (default: snapshot.path from config)")
}
