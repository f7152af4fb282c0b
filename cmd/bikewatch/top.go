package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the busiest stations for a time of day",
	RunE: func(cmd *cobra.Command, args []string) error {
		minute, err := timeFlag(cmd)
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("count")
		pick, _ := cmd.Flags().GetBool("pick")

		if pick && systemName == "" && len(config.Config.Systems) > 1 {
			if systemName, err = pickSystem(); err != nil {
				return err
			}
		}

		var snap *dataset.Snapshot
		_ = spinner.New().
			Title("Loading stations and trips...").
			Action(func() {
				snap, err = loadSnapshot(context.Background())
			}).
			Run()
		if err != nil {
			return fmt.Errorf("could not load snapshot: %w", err)
		}

		printTop(snap, minute, n)
		return nil
	},
}

func init() {
	addTimeFlags(topCmd)
	topCmd.Flags().IntP("count", "n", 10, "number of stations to show")
	topCmd.Flags().Bool("pick", false, "choose the system interactively")
}

func pickSystem() (string, error) {
	var name string
	opts := make([]huh.Option[string], 0, len(config.Config.Systems))
	for _, s := range config.Config.Systems {
		opts = append(opts, huh.NewOption(s.Name, s.Name))
	}
	err := huh.NewSelect[string]().
		Title("Which system?").
		Options(opts...).
		Value(&name).
		Run()
	return name, err
}

func printTop(snap *dataset.Snapshot, minute, n int) {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0)
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	outStyle := cellStyle.Foreground(lipgloss.Color("208"))
	inStyle := cellStyle.Foreground(lipgloss.Color("39"))
	evenStyle := cellStyle.Foreground(lipgloss.Color("141"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("Busiest %s stations, %s", snap.System, utils.FormatMinuteOfDay(minute))))

	stations := snap.Busiest(minute, n)
	if len(stations) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("No stations loaded."))
		return
	}

	rows := make([][]string, 0, len(stations))
	classes := make([]float64, 0, len(stations))
	for _, st := range stations {
		rows = append(rows, []string{
			st.ID,
			st.Name,
			strconv.Itoa(st.TotalTraffic),
			strconv.Itoa(st.Departures),
			strconv.Itoa(st.Arrivals),
		})
		classes = append(classes, traffic.FlowClass(traffic.DepartureRatio(st)))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("ID", "STATION", "TRIPS", "OUT", "IN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(classes) {
				return cellStyle
			}
			switch classes[row] {
			case 1:
				return outStyle
			case 0:
				return inStyle
			}
			return evenStyle
		})
	fmt.Println(t)
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).
		Render("orange: mostly departures, blue: mostly arrivals, purple: balanced"))
}
