// Package cluster evaluates candidate cluster counts for a customer
// feature matrix: seeded k-means runs scored by three internal validity
// indices, averaged per count. Picking the final count is left to the
// caller.
package cluster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gonum.org/v1/gonum/stat"
)

// CandidateResult is the per-count summary row handed to the external
// decision step. A row exists only once every seed for its count has
// completed; Degraded marks counts where fewer than half the seeds
// produced all three indices. When no seed succeeded the means are NaN,
// never zero.
type CandidateResult struct {
	K                    int
	SilhouetteMean       float64
	DaviesBouldinMean    float64
	CalinskiHarabaszMean float64
	SeedsSucceeded       int
	Degraded             bool
}

// InvalidClusterCountError reports a requested count outside [2, N-1],
// where the silhouette is mathematically undefined.
type InvalidClusterCountError struct {
	K int
	N int
}

func (e InvalidClusterCountError) Error() string {
	return fmt.Sprintf("cluster count k=%d invalid for %d points (need 2 <= k <= %d)", e.K, e.N, e.N-1)
}

// Selector sweeps an inclusive range of cluster counts over a fixed seed
// list. The zero value is not usable; construct with NewSelector.
type Selector struct {
	KMin  int
	KMax  int
	Seeds []int64

	log      *zap.SugaredLogger
	progress bool
}

func NewSelector(kmin, kmax int, seeds []int64, log *zap.SugaredLogger, progress bool) *Selector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Selector{KMin: kmin, KMax: kmax, Seeds: seeds, log: log, progress: progress}
}

type runScore struct {
	sil, db, ch float64
	err         error
}

// Evaluate standardizes the matrix, then runs one fit per (k, seed) pair on
// a bounded worker pool. Index failures are scoped to their run: they are
// logged, excluded from the mean and reflected in SeedsSucceeded, never
// coerced to zero. If ctx is canceled mid-sweep, rows for counts whose
// seeds did not all complete are absent and ctx's error is returned
// alongside the completed rows.
func (s *Selector) Evaluate(ctx context.Context, X [][]float64) ([]CandidateResult, error) {
	n := len(X)
	if s.KMax < s.KMin || len(s.Seeds) == 0 {
		return nil, fmt.Errorf("selector: empty sweep (k %d..%d, %d seeds)", s.KMin, s.KMax, len(s.Seeds))
	}
	for k := s.KMin; k <= s.KMax; k++ {
		if k < 2 || k > n-1 {
			return nil, InvalidClusterCountError{K: k, N: n}
		}
	}

	scaled := Standardize(X)
	counts := s.KMax - s.KMin + 1
	scores := make([]runScore, counts*len(s.Seeds))

	var bar *progressbar.ProgressBar
	if s.progress {
		bar = progressbar.Default(int64(len(scores)))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for ki := 0; ki < counts; ki++ {
		for si, seed := range s.Seeds {
			slot := &scores[ki*len(s.Seeds)+si]
			k, seed := s.KMin+ki, seed
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					slot.err = err
					return nil
				}
				slot.sil, slot.db, slot.ch, slot.err = scoreRun(scaled, k, seed)
				if slot.err != nil {
					s.log.Warnw("cluster run excluded", "k", k, "seed", seed, "error", slot.err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	results := make([]CandidateResult, 0, counts)
	for ki := 0; ki < counts; ki++ {
		var sils, dbs, chs []float64
		skip := false
		for si := range s.Seeds {
			r := scores[ki*len(s.Seeds)+si]
			if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
				skip = true
				break
			}
			if r.err != nil {
				continue
			}
			sils = append(sils, r.sil)
			dbs = append(dbs, r.db)
			chs = append(chs, r.ch)
		}
		if skip {
			continue
		}
		res := CandidateResult{
			K:              s.KMin + ki,
			SeedsSucceeded: len(sils),
			Degraded:       len(sils)*2 < len(s.Seeds),
		}
		if len(sils) > 0 {
			res.SilhouetteMean = stat.Mean(sils, nil)
			res.DaviesBouldinMean = stat.Mean(dbs, nil)
			res.CalinskiHarabaszMean = stat.Mean(chs, nil)
		} else {
			res.SilhouetteMean = math.NaN()
			res.DaviesBouldinMean = math.NaN()
			res.CalinskiHarabaszMean = math.NaN()
		}
		if res.Degraded {
			s.log.Warnw("cluster count degraded", "k", res.K, "seeds_ok", res.SeedsSucceeded, "seeds", len(s.Seeds))
		}
		results = append(results, res)
	}
	return results, ctx.Err()
}

// scoreRun fits one (k, seed) assignment and computes all three indices;
// any index failure discards the whole run.
func scoreRun(X [][]float64, k int, seed int64) (sil, db, ch float64, err error) {
	fit, err := Fit(X, k, seed)
	if err != nil {
		return 0, 0, 0, err
	}
	if sil, err = Silhouette(X, fit.Labels); err != nil {
		return 0, 0, 0, fmt.Errorf("silhouette(k=%d seed=%d): %w", k, seed, err)
	}
	if db, err = DaviesBouldin(X, fit.Labels); err != nil {
		return 0, 0, 0, fmt.Errorf("davies-bouldin(k=%d seed=%d): %w", k, seed, err)
	}
	if ch, err = CalinskiHarabasz(X, fit.Labels); err != nil {
		return 0, 0, 0, fmt.Errorf("calinski-harabasz(k=%d seed=%d): %w", k, seed, err)
	}
	return sil, db, ch, nil
}
