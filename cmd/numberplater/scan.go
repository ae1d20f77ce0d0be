package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"numberplater/internal/cache"
	"numberplater/internal/diag"
	"numberplater/internal/diagfmt"
	"numberplater/internal/plate"
	"numberplater/internal/scan"
	"numberplater/internal/sink"
	"numberplater/internal/trace"
)

const defaultWordList = "words.txt"

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [wordlist...]",
		Short: "Render whole word lists and save the dictionary",
		Long: `scan reads line-delimited word lists (default words.txt, "-" for stdin),
renders every plausible word and writes {word: [plates...]} to the output.
The output format follows the extension: .json, .json.xz or .db/.sqlite.
Year codes are never filtered in bulk mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultWordList}
			}
			return a.runScan(cmd, args)
		},
	}
	addFamilyFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file; defaults to [scan].output")
	cmd.Flags().IntP("jobs", "j", 0, "word lists processed in parallel (0 uses every CPU)")
	cmd.Flags().Bool("no-cache", false, "neither read nor write the disk cache")
	cmd.Flags().Bool("no-prefilter", false, "hand every line to the engine, keeping words without plates")
	cmd.Flags().Int("memo-size", -1, "words remembered in memory across lists (0 disables)")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().BoolP("verbose", "v", false, "also list skipped words (same as --min-severity info)")
	cmd.Flags().String("min-severity", "warning", "hide diagnostics below this severity (info|warning|error)")
	return cmd
}

func (a *app) runScan(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, "scan-cmd", 0)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	families, err := a.resolveFamilies(cmd)
	if err != nil {
		return err
	}
	opts := a.cfg.Scan
	if cmd.Flags().Changed("output") {
		if opts.Output, err = cmd.Flags().GetString("output"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("jobs") {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("memo-size") {
		if opts.MemoSize, err = cmd.Flags().GetInt("memo-size"); err != nil {
			return err
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	noPrefilter, err := cmd.Flags().GetBool("no-prefilter")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	minSevStr, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return err
	}
	minSev, err := diag.ParseSeverity(minSevStr)
	if err != nil {
		return err
	}
	if verbose {
		minSev = diag.SevInfo
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	useColor, err := a.useColor(cmd)
	if err != nil {
		return err
	}

	out, err := sink.Open(opts.Output)
	if err != nil {
		return err
	}
	memo, err := cache.NewMemo(opts.MemoSize)
	if err != nil {
		return err
	}
	var disk *cache.DiskCache
	if opts.Cache && !noCache {
		disk, err = a.openCache()
		if err != nil {
			// a missing cache only costs time
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			disk = nil
		}
	}

	req := scan.Request{
		Files:          files,
		Families:       families,
		Jobs:           opts.Jobs,
		Prefilter:      opts.Prefilter && !noPrefilter,
		Analyzer:       plate.NewAnalyzer(nil),
		Cache:          disk,
		Memo:           memo,
		Sink:           out,
		MaxDiagnostics: maxDiagnostics,
		Now:            a.now,
	}

	var res scan.Result
	if !quiet && shouldUseTUI(mode) {
		res, err = runScanWithUI(ctx, "numberplater scan", req)
	} else {
		res, err = scan.Run(ctx, req)
	}

	errOut := cmd.ErrOrStderr()
	if res.Bag != nil {
		res.Bag.Sort()
		diagfmt.Pretty(errOut, res.Bag, diagfmt.PrettyOpts{
			Color:       useColor,
			PathMode:    diagfmt.PathModeAuto,
			BaseDir:     workingDir(),
			ShowNotes:   true,
			MinSeverity: minSev,
		})
	}
	if err != nil {
		return err
	}

	if !quiet {
		printScanSummary(cmd, res, out.Path())
	}
	span.WithExtra("run", res.RunID).WithExtra("words", strconv.Itoa(len(res.Dictionary)))
	if wantTimings(cmd) {
		printTimings(errOut, stageTimer(res.Timings))
	}
	if res.Failed() || (res.Bag != nil && res.Bag.HasErrors()) {
		return errSilent
	}
	return nil
}

func (a *app) openCache() (*cache.DiskCache, error) {
	if a.cfg.Scan.CacheDir != "" {
		return cache.OpenAt(a.cfg.Scan.CacheDir)
	}
	return cache.Open("numberplater")
}

func printScanSummary(cmd *cobra.Command, res scan.Result, output string) {
	plates := 0
	for _, rs := range res.Dictionary {
		plates += len(rs)
	}
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scanned %d list(s) (%d cached): %d words, %d plates -> %s\n",
		len(res.Files), cached, len(res.Dictionary), plates, output)
}

func workingDir() string {
	wd, err := filepath.Abs(".")
	if err != nil {
		return ""
	}
	return wd
}
