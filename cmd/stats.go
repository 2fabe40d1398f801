package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/backusd/cubeworld/app"
	"github.com/olekukonko/tablewriter"
)

func displaySessionStats(stats app.Stats) {
	var buf bytes.Buffer
	writeSessionStats(&buf, stats)
	logger.Noticef("session statistics\n%s", buf.String())
}

func writeSessionStats(w io.Writer, stats app.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Avg FPS", "CPU", "Latency", "State changes", "Position updates"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		fmt.Sprintf("%.1f", stats.AverageFPS()),
		fmt.Sprintf("%d %%", stats.Last.CPU),
		fmt.Sprintf("%.1f ms", stats.Last.Latency),
		fmt.Sprintf("%d", stats.StateChanges),
		fmt.Sprintf("%d", stats.PositionUpdates),
	})
	table.SetFooter([]string{"", "", "", "", "TOTAL", stats.RunTime().String()})

	table.Render()
}
