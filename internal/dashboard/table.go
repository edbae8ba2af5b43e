package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const placeholder = "—"

// WriteTable prints rows the way the interviewer table shows them.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE\tSTATUS\tSCORE\tUPDATED")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "No candidates")
	}
	for _, r := range rows {
		score := placeholder
		if r.FinalScore != nil {
			score = fmt.Sprintf("%d/60", *r.FinalScore)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(r.Name),
			orDash(r.Email),
			orDash(r.Phone),
			strings.ReplaceAll(string(r.Status), "_", " "),
			score,
			r.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}
