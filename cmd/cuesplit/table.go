package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cuesplit/internal/splitplan"
)

type column struct {
	title string
	align text.Align
}

func left(title string) column  { return column{title: title, align: text.AlignLeft} }
func right(title string) column { return column{title: title, align: text.AlignRight} }

// renderTable draws rows in the rounded style. Short rows are padded and
// cells beyond the last column are dropped.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		header = append(header, c.title)
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		tw.AppendRow(cells)
	}
	return tw.Render()
}

// planTables renders the album summary followed by one row per track.
func planTables(rec splitplan.Record) string {
	summary := renderTable(
		[]column{left("Field"), left("Value")},
		[][]string{
			{"Album", rec.AlbumName},
			{"Performer", rec.Performer},
			{"Cue", rec.CueFilePath},
			{"Audio", rec.AudioFilePath},
			{"Guessed", rec.AudioFilePathGuessed},
			{"Candidates", strconv.Itoa(len(rec.AudioFilePathGuessedCandidates))},
			{"Invalid", yesNo(rec.Invalid)},
		},
	)

	rows := make([][]string, 0, len(rec.Tracks))
	for _, track := range rec.Tracks {
		duration := track.Duration
		if duration == "" {
			duration = "(to end)"
		}
		rows = append(rows, []string{track.TrackNumber, track.TrackName, track.Begin, duration})
	}
	tracks := renderTable([]column{right("#"), left("Output"), right("Begin"), right("Duration")}, rows)
	return summary + "\n" + tracks + "\n"
}

// scanTable lists one row per planned source. Guessed audio files are shown
// by base name in place of an error.
func scanTable(results []scanResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		tracks := ""
		detail := r.Error
		if r.Plan != nil {
			tracks = strconv.Itoa(len(r.Plan.Tracks))
			if r.Plan.AudioFilePathGuessed != "" {
				detail = "guessed " + filepath.Base(r.Plan.AudioFilePathGuessed)
			}
		}
		rows = append(rows, []string{string(r.Status), r.Source, tracks, detail})
	}
	return renderTable([]column{left("Status"), left("Source"), right("Tracks"), left("Detail")}, rows)
}

func journalTable(entries []journalRow) string {
	rows := make([][]string, 0, len(entries))
	for _, r := range entries {
		rows = append(rows, []string{r.UpdatedAt, string(r.Status), r.Source, strconv.Itoa(r.TrackCount), r.Error})
	}
	return renderTable([]column{left("Updated"), left("Status"), left("Source"), right("Tracks"), left("Error")}, rows)
}

func checkTable(results []checkRow) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		state := "ok"
		switch {
		case !r.Passed && r.Optional:
			state = "warn"
		case !r.Passed:
			state = "fail"
		}
		rows = append(rows, []string{state, r.Name, r.Detail})
	}
	return renderTable([]column{left("State"), left("Check"), left("Detail")}, rows)
}

func summaryLine(report scanReport) string {
	return fmt.Sprintf("%d album(s), %d planned, %d skipped (run %s)", report.Albums, len(report.Results), report.Skipped, report.RunID)
}
