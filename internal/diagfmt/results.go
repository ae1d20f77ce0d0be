package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"numberplater/internal/plate"
)

// ResultFormat selects how ranked plates are written.
type ResultFormat uint8

const (
	ResultPretty ResultFormat = iota
	ResultPlain
	ResultJSON
)

// ParseResultFormat converts a flag value to ResultFormat.
func ParseResultFormat(s string) (ResultFormat, error) {
	switch strings.ToLower(s) {
	case "", "pretty", "table":
		return ResultPretty, nil
	case "plain", "text":
		return ResultPlain, nil
	case "json":
		return ResultJSON, nil
	}
	return ResultPretty, fmt.Errorf("invalid format %q (expected: pretty|plain|json)", s)
}

func (f ResultFormat) String() string {
	switch f {
	case ResultPlain:
		return "plain"
	case ResultJSON:
		return "json"
	}
	return "pretty"
}

// Results writes ranked candidates for input in the chosen format.
func Results(w io.Writer, format ResultFormat, input string, cands []plate.Candidate, opts ResultOpts) error {
	if opts.Limit > 0 && opts.Limit < len(cands) {
		cands = cands[:opts.Limit]
	}
	switch format {
	case ResultPlain:
		return resultsPlain(w, cands)
	case ResultJSON:
		return resultsJSON(w, input, cands)
	}
	return resultsPretty(w, input, cands, opts)
}

func resultsPlain(w io.Writer, cands []plate.Candidate) error {
	for _, c := range cands {
		if _, err := fmt.Fprintln(w, c.Rendering); err != nil {
			return err
		}
	}
	return nil
}

// CandidateJSON is one rendering in JSON output.
type CandidateJSON struct {
	Rendering string   `json:"rendering"`
	Score     float64  `json:"score"`
	Families  []string `json:"families"`
}

// ResultsOutput is the root of JSON results output.
type ResultsOutput struct {
	Input   string          `json:"input"`
	Count   int             `json:"count"`
	Results []CandidateJSON `json:"results"`
}

// BuildResultsOutput assembles the JSON structure without encoding it.
func BuildResultsOutput(input string, cands []plate.Candidate) ResultsOutput {
	out := ResultsOutput{Input: input, Results: make([]CandidateJSON, 0, len(cands))}
	for _, c := range cands {
		fams := c.Families.List()
		names := make([]string, len(fams))
		for i, f := range fams {
			names[i] = f.String()
		}
		out.Results = append(out.Results, CandidateJSON{Rendering: c.Rendering, Score: c.Score, Families: names})
	}
	out.Count = len(out.Results)
	return out
}

func resultsJSON(w io.Writer, input string, cands []plate.Candidate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildResultsOutput(input, cands))
}

func resultsPretty(w io.Writer, input string, cands []plate.Candidate, opts ResultOpts) error {
	p := newPalette(opts.Color)
	if len(cands) == 0 {
		_, err := fmt.Fprintf(w, "%s %s\n", p.dim("no plates for"), p.path(input))
		return err
	}

	header := []string{"#", "plate", "score"}
	if opts.ShowFamilies {
		header = append(header, "families")
	}
	rows := make([][]string, 0, len(cands))
	for i, c := range cands {
		row := []string{strconv.Itoa(i + 1), strings.ToUpper(c.Rendering), formatScore(c.Score)}
		if opts.ShowFamilies {
			row = append(row, c.Families.String())
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	writeRow(&b, header, widths, []paintFunc{p.dim, p.dim, p.dim, p.dim})
	for _, row := range rows {
		writeRow(&b, row, widths, []paintFunc{p.dim, p.rendering, p.score, p.dim})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeRow pads on the visible width so colour escapes do not skew columns.
func writeRow(b *strings.Builder, row []string, widths []int, paint []paintFunc) {
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		pad := widths[i] - runewidth.StringWidth(cell)
		if i == 0 || i == 2 {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(paint[i](cell))
			continue
		}
		b.WriteString(paint[i](cell))
		if i < len(row)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteByte('\n')
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
