package typedstring

import "context"

// Pass runs one generation over a batch of candidates.
type Pass struct {
	// OnSkip, when set, is called for every candidate Analyze rejects.
	OnSkip func(Candidate)
	// OnEmit, when set, is called for every declaration rendered.
	OnEmit func(Declaration)
}

// Run returns the bootstrap units followed by one unit per accepted
// candidate, in input order. A hint name already produced wins over later
// duplicates. ctx is only checked between candidates.
func (p Pass) Run(ctx context.Context, candidates []Candidate) ([]Source, error) {
	sources := Bootstrap()
	seen := make(map[string]struct{}, len(sources)+len(candidates))
	for _, src := range sources {
		seen[src.HintName] = struct{}{}
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		decl, ok := Analyze(c)
		if !ok {
			if p.OnSkip != nil {
				p.OnSkip(c)
			}
			continue
		}
		if _, dup := seen[decl.HintName()]; dup {
			continue
		}
		seen[decl.HintName()] = struct{}{}

		if p.OnEmit != nil {
			p.OnEmit(decl)
		}
		sources = append(sources, Emit(decl))
	}
	return sources, nil
}

// Generate is Pass{}.Run.
func Generate(ctx context.Context, candidates []Candidate) ([]Source, error) {
	return Pass{}.Run(ctx, candidates)
}
