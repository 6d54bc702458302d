package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/table"
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func renderVideos(w io.Writer, videos []models.Video, empty string) {
	if len(videos) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	t := table.New(table.VideoColumns(), len(videos))
	t.SetRows(videos)
	rows := make([][]string, 0, len(videos))
	for _, v := range t.Rows() {
		rows = append(rows, t.Cells(v))
	}
	renderTable(w, t.Header(), rows)
}

func renderStats(w io.Writer, stats []models.Stat) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No stats available")
		return
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Title, s.Value})
	}
	renderTable(w, []string{"Metric", "Value"}, rows)
}

func renderUsers(w io.Writer, v *table.UsersView) {
	if f := v.Filter(); f != (table.UserFilter{}) {
		fmt.Fprintf(w, "Filter: search=%q role=%s status=%s\n", f.Search, orAll(f.Role), orAll(f.Status))
	}

	page := v.Page()
	if len(page) == 0 {
		fmt.Fprintln(w, "No users found")
	} else {
		rows := make([][]string, 0, len(page))
		for _, u := range page {
			rows = append(rows, v.Cells(u))
		}
		renderTable(w, v.Header(), rows)
	}

	from, to, total := v.Window()
	fmt.Fprintf(w, "Showing %d to %d of %d results | Page %d of %d\n",
		from, to, total, v.PageIndex()+1, max(v.PageCount(), 1))
}

func orAll(s string) string {
	if s == "" {
		return table.All
	}
	return s
}
