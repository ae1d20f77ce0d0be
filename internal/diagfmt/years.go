package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// YearsOutput is the JSON form of the issuable year codes.
type YearsOutput struct {
	At    string   `json:"at"`
	Count int      `json:"count"`
	Codes []string `json:"codes"`
}

// Years writes the issuable year codes at the given instant.
func Years(w io.Writer, format ResultFormat, at time.Time, codes []string, color bool) error {
	switch format {
	case ResultJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(YearsOutput{At: at.Format(time.DateOnly), Count: len(codes), Codes: codes})
	case ResultPlain:
		for _, c := range codes {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	p := newPalette(color)
	if _, err := fmt.Fprintf(w, "%s %s (%d codes)\n", p.dim("issuable year codes at"), p.path(at.Format(time.DateOnly)), len(codes)); err != nil {
		return err
	}
	const perLine = 12
	for i := 0; i < len(codes); i += perLine {
		line := codes[i:min(i+perLine, len(codes))]
		if _, err := fmt.Fprintf(w, "  %s\n", p.score(strings.Join(line, " "))); err != nil {
			return err
		}
	}
	return nil
}
