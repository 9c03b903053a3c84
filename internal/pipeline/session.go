package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"orm-generator/internal/analyze"
	"orm-generator/internal/cache"
	"orm-generator/internal/diagnostic"
	"orm-generator/internal/gen"
	"orm-generator/internal/logger"
	"orm-generator/internal/model"
	"orm-generator/internal/validate"
)

// Config holds the settings of a session.
type Config struct {
	// Workers bounds the number of models processed at once. Zero means
	// GOMAXPROCS.
	Workers int
	Emitter gen.Config
}

// Output is an artifact paired with the directory it belongs in.
type Output struct {
	Artifact gen.Artifact
	Dir      string
}

// Emitted is an output of a pass. Fresh is false when it came from the
// cache unchanged.
type Emitted struct {
	Output
	Fresh bool
}

// Failure records a model whose code was not emitted.
type Failure struct {
	ID  analyze.TypeID
	Err error
	// Target names the file the model's mapper would be written to. Its
	// artifact has no text; a mapper left there by an earlier pass is out
	// of date.
	Target Output
	// Unformatted holds the raw source when formatting failed.
	Unformatted *Output
}

// Result is the outcome of one pass.
type Result struct {
	Outputs     []Emitted
	Retired     []Output
	Failed      []Failure
	Diagnostics diagnostic.Diagnostics
}

// Fresh returns the outputs emitted during the pass.
func (r *Result) Fresh() []Emitted {
	var out []Emitted

	for _, o := range r.Outputs {
		if o.Fresh {
			out = append(out, o)
		}
	}

	return out
}

// Session owns the cache of one build or watch session.
type Session struct {
	cfg       Config
	store     *cache.Store[Output]
	emitter   *gen.Emitter
	validator *validate.Validator
	log       *slog.Logger
}

// NewSession starts a session with an empty cache.
func NewSession(cfg Config, log *slog.Logger) *Session {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if log == nil {
		log = logger.Get()
	}

	return &Session{
		cfg:       cfg,
		store:     cache.NewStore[Output](),
		emitter:   gen.NewEmitter(cfg.Emitter),
		validator: validate.New(),
		log:       log,
	}
}

// Close discards the session's cache.
func (s *Session) Close() {
	s.store.Close()
}

// Stats returns the cache counters of the session.
func (s *Session) Stats() cache.Stats {
	return s.store.Stats()
}

// Run performs one pass over snap. Failures of single models are reported
// in the result; only cancellation of ctx aborts the pass.
func (s *Session) Run(ctx context.Context, snap *analyze.Snapshot) (*Result, error) {
	res := &Result{}

	descs, errs, err := s.build(ctx, snap)
	if err != nil {
		return nil, err
	}

	reg := make(model.Registry, len(descs))
	broken := make(map[analyze.TypeID]error)

	for i, d := range descs {
		if d != nil {
			reg[d.ID] = d
		} else {
			broken[snap.Declarations[i].ID] = errs[i]
		}
	}

	res.Diagnostics.Merge(s.validator.Validate(snap))

	var targets []*model.Descriptor

	for i := range snap.Declarations {
		decl := &snap.Declarations[i]
		if !decl.Generate {
			continue
		}

		if errs[i] != nil {
			res.fail(decl, errs[i])
			continue
		}

		d := descs[i]
		if d.Marker == analyze.MarkerPlain && d.HasNested() {
			// reported as ORM003
			res.Failed = append(res.Failed, failure(decl, fmt.Errorf("%s: plain model nests other models", d.ID)))
			continue
		}

		if id, err := brokenNested(d, reg, broken); err != nil {
			res.failEmit(decl, fmt.Errorf("%s: nested model %s failed: %w", d.ID.Name, id, err), nil)
			continue
		}

		targets = append(targets, d)
	}

	outs, err := s.resolve(ctx, snap, reg, targets, res)
	if err != nil {
		return nil, err
	}

	res.Outputs = outs

	// Failed models lose their cached mapper along with vanished ones.
	keep := make(map[analyze.TypeID]bool, len(snap.Declarations))
	for _, decl := range snap.Targets() {
		keep[decl.ID] = true
	}

	for _, f := range res.Failed {
		delete(keep, f.ID)
	}

	res.Retired = s.store.Prune(func(id analyze.TypeID) bool { return keep[id] })

	res.Diagnostics.Sort()
	slices.SortFunc(res.Failed, func(a, b Failure) int { return cmp.Compare(a.ID.String(), b.ID.String()) })

	stats := s.store.Stats()
	s.log.Info("pass complete",
		"models", len(snap.Targets()),
		"emitted", len(res.Fresh()),
		"unchanged", len(res.Outputs)-len(res.Fresh()),
		"failed", len(res.Failed),
		"retired", len(res.Retired),
		"errors", len(res.Diagnostics.Errors),
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
	)

	return res, nil
}

// build creates the descriptor of every declaration, targets and
// referenced models alike. descs[i] and errs[i] belong to
// snap.Declarations[i].
func (s *Session) build(ctx context.Context, snap *analyze.Snapshot) ([]*model.Descriptor, []error, error) {
	n := snap.Len()
	descs := make([]*model.Descriptor, n)
	errs := make([]error, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i := range snap.Declarations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			descs[i], errs[i] = model.Build(&snap.Declarations[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return descs, errs, nil
}

// resolve runs every target through the cache in parallel.
func (s *Session) resolve(
	ctx context.Context,
	snap *analyze.Snapshot,
	reg model.Registry,
	targets []*model.Descriptor,
	res *Result,
) ([]Emitted, error) {
	var (
		mu   sync.Mutex
		outs = make([]Emitted, 0, len(targets))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, d := range targets {
		decl, _ := snap.Lookup(d.ID)
		dir := decl.Dir

		g.Go(func() error {
			var unformatted *Output

			out, fresh, err := s.store.Resolve(gctx, d, model.DepsKey(reg, d),
				func(ctx context.Context, d *model.Descriptor) (Output, error) {
					art, err := s.emitter.Emit(ctx, d, reg)
					if errors.Is(err, gen.ErrFormat) {
						unformatted = &Output{Artifact: art, Dir: dir}
					}

					return Output{Artifact: art, Dir: dir}, err
				})

			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				mu.Lock()
				res.failEmit(decl, err, unformatted)
				mu.Unlock()

				return nil
			}

			s.log.Debug("resolved model", "model", d.ID.String(), "fresh", fresh)

			mu.Lock()
			outs = append(outs, Emitted{Output: out, Fresh: fresh})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(outs, func(a, b Emitted) int {
		return cmp.Compare(a.Artifact.ID.String(), b.Artifact.ID.String())
	})

	return outs, nil
}

// brokenNested returns the first model below d, at any depth, whose
// descriptor could not be built, along with its error.
func brokenNested(d *model.Descriptor, reg model.Registry, broken map[analyze.TypeID]error) (analyze.TypeID, error) {
	seen := map[analyze.TypeID]bool{d.ID: true}

	var walk func(cur *model.Descriptor) (analyze.TypeID, error)
	walk = func(cur *model.Descriptor) (analyze.TypeID, error) {
		for _, p := range cur.Properties {
			ref := p.Class.Ref
			if !p.Class.IsNested() || seen[ref] {
				continue
			}

			seen[ref] = true

			if err, ok := broken[ref]; ok {
				return ref, err
			}

			if nd, ok := reg[ref]; ok {
				if id, err := walk(nd); err != nil {
					return id, err
				}
			}
		}

		return analyze.TypeID{}, nil
	}

	return walk(d)
}

func failure(decl *analyze.Declaration, err error) Failure {
	return Failure{
		ID:  decl.ID,
		Err: err,
		Target: Output{
			Artifact: gen.Artifact{Key: gen.Key{Namespace: decl.PkgName, Name: decl.ID.Name}, ID: decl.ID},
			Dir:      decl.Dir,
		},
	}
}

// fail records a model whose descriptor could not be built. Invalid
// property types are already reported as ORM001.
func (r *Result) fail(decl *analyze.Declaration, err error) {
	r.Failed = append(r.Failed, failure(decl, err))

	var invalid *model.InvalidPropertyError
	if errors.As(err, &invalid) {
		return
	}

	r.Diagnostics.AddError(validate.CodeBuildFailure, err.Error(), decl.Pos, decl.ID.Name, "")
}

// failEmit records a model whose code could not be emitted. Cycles are
// already reported as ORM004.
func (r *Result) failEmit(decl *analyze.Declaration, err error, unformatted *Output) {
	f := failure(decl, err)
	f.Unformatted = unformatted
	r.Failed = append(r.Failed, f)

	if errors.Is(err, gen.ErrCycle) {
		return
	}

	r.Diagnostics.AddError(validate.CodeBuildFailure, err.Error(), decl.Pos, decl.ID.Name, "")
}
