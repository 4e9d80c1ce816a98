package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/domain/matching"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func writeMatches(w io.Writer, format string, matches []matching.JobMatch) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputTable:
		return writeMatchTable(w, matches)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewJobMatchResponses(matches))
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func writeMatchTable(w io.Writer, matches []matching.JobMatch) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tLABEL\tTITLE\tCOMPANY\tSTATUS\tREASONS")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.MatchScore,
			matching.MatchScoreLabel(m.MatchScore),
			m.Title,
			m.CompanyName,
			m.Status,
			strings.Join(m.MatchReasons, "; "),
		)
	}
	return tw.Flush()
}
