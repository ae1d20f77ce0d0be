package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"numberplater/internal/diag"
	"numberplater/internal/diagfmt"
	"numberplater/internal/observ"
	"numberplater/internal/plate"
	"numberplater/internal/trace"
	"numberplater/internal/wildcard"
	"numberplater/internal/yearcode"
)

// familyFlags maps short flags to the families they select.
var familyFlags = []struct {
	name, short string
	family      plate.Family
}{
	{"dateless", "d", plate.Dateless},
	{"northern-irish", "n", plate.NorthernIrishDateless},
	{"suffix", "s", plate.Suffix},
	{"prefix", "p", plate.Prefix},
	{"current", "c", plate.Current},
}

func addFamilyFlags(cmd *cobra.Command) {
	for _, f := range familyFlags {
		cmd.Flags().BoolP(f.name, f.short, false, "include "+f.family.String()+" plates")
	}
	cmd.Flags().BoolP("all", "a", false, "include every plate family")
}

// resolveFamilies picks families from flags, then from [analyze].families,
// then falls back to all of them.
func (a *app) resolveFamilies(cmd *cobra.Command) (plate.FamilySet, error) {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return 0, err
	}
	if all {
		return plate.AllFamilies, nil
	}
	var set plate.FamilySet
	for _, f := range familyFlags {
		on, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return 0, err
		}
		if on {
			set = set.With(f.family)
		}
	}
	if !set.Empty() {
		return set, nil
	}
	if len(a.cfg.Analyze.Families) > 0 {
		return plate.ParseFamilySet(a.cfg.Analyze.Families)
	}
	return plate.AllFamilies, nil
}

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <word|pattern>",
		Short: "Render a word (or a one-wildcard pattern) as number plates",
		Long: `analyze prints every plate a word can be rendered as, best first.
A single '*' in the pattern stands for any letter or for no letter at all:
"c*t" analyses cat, cbt, ..., czt and ct together.`,
		Example: "  numberplater analyze bob\n  numberplater analyze -c -p g*ose",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0])
		},
	}
	addFamilyFlags(cmd)
	cmd.Flags().Bool("ignore-year", false, "keep current-format plates whose year code is not issuable yet")
	cmd.Flags().String("format", "", "output format (pretty|plain|json); defaults to [output].format")
	cmd.Flags().Int("limit", 0, "print at most this many plates (0 prints all); defaults to [analyze].limit")
	cmd.Flags().Bool("show-families", false, "show which families produced each plate")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, pattern string) error {
	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeCommand, "analyze", 0).WithExtra("input", pattern)
	defer span.End("")

	families, err := a.resolveFamilies(cmd)
	if err != nil {
		return err
	}
	ignoreYear := a.cfg.Analyze.IgnoreYear
	if cmd.Flags().Changed("ignore-year") {
		if ignoreYear, err = cmd.Flags().GetBool("ignore-year"); err != nil {
			return err
		}
	}
	formatStr := a.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		if formatStr, err = cmd.Flags().GetString("format"); err != nil {
			return err
		}
	}
	format, err := diagfmt.ParseResultFormat(formatStr)
	if err != nil {
		return err
	}
	limit := a.cfg.Analyze.Limit
	if cmd.Flags().Changed("limit") {
		if limit, err = cmd.Flags().GetInt("limit"); err != nil {
			return err
		}
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative (got %d)", limit)
	}
	showFamilies, err := cmd.Flags().GetBool("show-families")
	if err != nil {
		return err
	}
	useColor, err := a.useColor(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	phase := timer.Begin("expand")
	words, err := wildcard.Expand(pattern)
	if err != nil {
		timer.End(phase, "failed")
		return a.reportInputError(cmd, pattern, err, useColor)
	}
	timer.End(phase, strconv.Itoa(len(words))+" words")

	analyzer := plate.NewAnalyzer(yearcode.NewCalculator(a.now).Issuable())
	phase = timer.Begin("analyze")
	var set plate.CandidateSet
	for _, w := range words.Words() {
		wordSpan := trace.Begin(tracer, trace.ScopeWord, "word", span.ID()).WithExtra("word", w.String())
		if err := analyzer.Collect(&set, w, families, ignoreYear); err != nil {
			wordSpan.End("error")
			timer.End(phase, "failed")
			return a.reportInputError(cmd, pattern, err, useColor)
		}
		wordSpan.End("")
	}
	cands := plate.Rank(set.Candidates())
	timer.End(phase, strconv.Itoa(len(cands))+" plates")
	span.WithExtra("plates", strconv.Itoa(len(cands)))

	if err := diagfmt.Results(cmd.OutOrStdout(), format, pattern, cands, diagfmt.ResultOpts{
		Color:        useColor,
		Limit:        limit,
		ShowFamilies: showFamilies,
	}); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if wantTimings(cmd) {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return nil
}

// reportInputError prints err as a diagnostic and returns errSilent.
func (a *app) reportInputError(cmd *cobra.Command, pattern string, err error, useColor bool) error {
	bag := diag.NewBag(1)
	bag.Add(diag.FromError(diag.SevError, diag.Location{}, pattern, err))
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{Color: useColor, ShowNotes: true})
	if errors.Is(err, plate.ErrUnscorableLetter) {
		fmt.Fprintln(cmd.ErrOrStderr(), "this is a bug in numberplater; please report it")
	}
	return errSilent
}
