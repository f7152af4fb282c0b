package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/VivianChencwy/bikewatching/formatter"
)

var trafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Print per-station traffic for one time of day",
	RunE: func(cmd *cobra.Command, args []string) error {
		minute, err := timeFlag(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		res := formatter.WrapTrafficResponse(snap.Scatter(minute), snap.System, snap.ID.String(), time.Now())
		rb := formatter.NewResponseBuilder()
		var buf []byte
		switch format {
		case "json":
			buf = rb.BuildJSON(res)
		case "text":
			buf = rb.BuildText(res)
		case "pb":
			if buf, err = rb.BuildProto(res); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q: want json, text or pb", format)
		}
		_, err = os.Stdout.Write(buf)
		return err
	},
}

func init() {
	addTimeFlags(trafficCmd)
	trafficCmd.Flags().StringP("format", "f", "json", "json|text|pb")
}
