package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderQuery(w io.Writer, q models.MediaQuery) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Query", q.Query})
	t.AppendRow(table.Row{"Strategy", q.Strategy()})
	if q.IsTV() {
		t.AppendRow(table.Row{"Show", q.TVShowTitle})
		t.AppendRow(table.Row{"Season", q.SeasonNumber})
		t.AppendRow(table.Row{"Episode", q.EpisodeNumber})
	}
	if q.OriginalTitle != "" {
		t.AppendRow(table.Row{"Original title", q.OriginalTitle})
	}
	t.AppendRow(table.Row{"Year", intOrDash(q.Year)})
	t.AppendRow(table.Row{"Parent IMDb", intOrDash(q.ParentIMDbID)})
	t.AppendRow(table.Row{"Parent TMDb", intOrDash(q.ParentTMDbID)})
	t.AppendRow(table.Row{"IMDb", intOrDash(q.IMDbID)})
	t.AppendRow(table.Row{"TMDb", intOrDash(q.TMDbID)})
	if q.FilePath != "" {
		t.AppendRow(table.Row{"Library file", q.FilePath})
	}
	t.Render()
}

func renderItems(w io.Writer, items []models.ListItem) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Language", "Release", "Rating", "Sync", "HI", "File ID"})
	for i, item := range items {
		t.AppendRow(table.Row{i + 1, item.Label, item.Label2, item.Icon, yesNo(item.Sync), yesNo(item.HearingImpaired), item.FileID})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d subtitles", len(items))})
	t.Render()
}

func renderScores(w io.Writer, scored []ranking.Scored) {
	header := table.Row{"#", "Release"}
	for _, c := range ranking.Categories {
		header = append(header, c.Name)
	}
	header = append(header, "similarity")

	t := newTable(w)
	t.AppendHeader(header)
	for i, s := range scored {
		row := table.Row{i + 1, s.Candidate.Release}
		for _, v := range s.Cost {
			row = append(row, strconv.FormatFloat(-v, 'f', -1, 64))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
