package plate

// Analyzer runs words through a registry and a generator.
type Analyzer struct {
	Registry *Registry
	// Years is consulted for current-format marks unless the caller opts out.
	Years YearFilter
}

// NewAnalyzer returns an analyzer over the default registry.
func NewAnalyzer(years YearFilter) *Analyzer {
	return &Analyzer{Registry: DefaultRegistry(), Years: years}
}

func (a *Analyzer) registry() *Registry {
	if a.Registry == nil {
		return DefaultRegistry()
	}
	return a.Registry
}

// Collect adds the renderings of w for families to set.
func (a *Analyzer) Collect(set *CandidateSet, w Word, families FamilySet, ignoreYearFilter bool) error {
	gen := Generator{Years: a.Years}
	if ignoreYearFilter {
		gen.Years = nil
	}
	for _, rule := range a.registry().Match(w, families) {
		if err := gen.generateInto(set, w, rule); err != nil {
			return err
		}
	}
	return nil
}

// AnalyzeWord returns the ranked renderings of a single word.
func (a *Analyzer) AnalyzeWord(w Word, families FamilySet, ignoreYearFilter bool) ([]Candidate, error) {
	var set CandidateSet
	if err := a.Collect(&set, w, families, ignoreYearFilter); err != nil {
		return nil, err
	}
	return Rank(set.Candidates()), nil
}

// Dictionary maps each analysed word to its renderings, best first.
type Dictionary map[Word][]string

// AnalyzeDictionary renders every word for families. The year filter is not
// applied. Words without renderings map to an empty slice.
func (a *Analyzer) AnalyzeDictionary(words []Word, families FamilySet) (Dictionary, error) {
	out := make(Dictionary, len(words))
	for _, w := range words {
		if _, done := out[w]; done {
			continue
		}
		cands, err := a.AnalyzeWord(w, families, true)
		if err != nil {
			return nil, err
		}
		out[w] = Renderings(cands)
	}
	return out, nil
}
