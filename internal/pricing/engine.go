package pricing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"office-pricing/internal/model"
)

// RulesSource resolves the pricing rules for a location. Implementations
// must return an immutable value; the engine never writes to it.
type RulesSource interface {
	RulesFor(location string) (model.PricingRules, error)
}

// PublishedPriceSource looks up the externally published price for a
// location and period. A nil pointer with nil error means "not set".
type PublishedPriceSource interface {
	PublishedPriceFor(location string, year, month int) (*float64, error)
}

// Reasoner produces explanation text for a result. The engine treats the
// text as opaque; generation (LLM or otherwise) is a collaborator concern.
type Reasoner interface {
	Reasoning(res model.PricingResult) string
}

// Engine runs the pricing pipeline. Per-location calculation is pure, so a
// batch fans out across a bounded worker pool with no shared mutable state.
type Engine struct {
	Overrides OverrideSource       // optional
	Published PublishedPriceSource // optional
	Reasoner  Reasoner             // optional

	// Workers bounds batch parallelism; <=0 means 4.
	Workers int
}

func New() *Engine { return &Engine{} }

// BatchResult is the outcome of one pipeline run: exactly one entry, either
// a result or a skip, per input snapshot.
type BatchResult struct {
	AnchorDate time.Time
	Results    []model.PricingResult
	Skips      []model.Skip
}

// Run prices every snapshot for the anchor date. Per-location failures are
// collected as skips; only an absent rules source or an empty snapshot set
// is fatal.
func (e *Engine) Run(ctx context.Context, anchor time.Time, snaps []model.LocationSnapshot, rules RulesSource) (*BatchResult, error) {
	if rules == nil {
		return nil, errors.New("rules source is nil")
	}
	if len(snaps) == 0 {
		return nil, errors.New("no snapshots to process")
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(snaps) {
		workers = len(snaps)
	}

	type outcome struct {
		result *model.PricingResult
		skip   *model.Skip
	}
	outcomes := make([]outcome, len(snaps))

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				snap := snaps[i]
				if ctx.Err() != nil {
					outcomes[i] = outcome{skip: &model.Skip{Location: snap.Name, Reason: ctx.Err().Error()}}
					continue
				}
				res, err := e.Calculate(snap, rules)
				if err != nil {
					log.Warn().Str("location", snap.Name).Err(err).Msg("location skipped")
					outcomes[i] = outcome{skip: &model.Skip{Location: snap.Name, Reason: err.Error()}}
					continue
				}
				outcomes[i] = outcome{result: &res}
			}
		}()
	}
	for i := range snaps {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	batch := &BatchResult{AnchorDate: anchor}
	for _, o := range outcomes {
		switch {
		case o.result != nil:
			batch.Results = append(batch.Results, *o.result)
		case o.skip != nil:
			batch.Skips = append(batch.Skips, *o.skip)
		}
	}
	return batch, nil
}

// Calculate prices one location: breakeven, target resolution, tier and
// margin application, clamping, override folding, and assembly.
func (e *Engine) Calculate(snap model.LocationSnapshot, rulesSrc RulesSource) (model.PricingResult, error) {
	if err := snap.Validate(); err != nil {
		return model.PricingResult{}, dataNotFound(snap.Name, "snapshot validation", err)
	}

	rules, err := rulesSrc.RulesFor(snap.Name)
	if err != nil {
		return model.PricingResult{}, configError(snap.Name, "rules resolution", err)
	}
	if err := rules.Validate(); err != nil {
		return model.PricingResult{}, configError(snap.Name, "rules validation", err)
	}

	actualBE, err := ActualBreakevenOccupancy(snap)
	if err != nil {
		return model.PricingResult{}, err
	}

	target, mode := ResolveTarget(rules, snap, actualBE, PolicyByName(rules.TargetPolicy))

	breakevenPrice, err := BreakevenPricePerSeat(snap, target)
	if err != nil {
		return model.PricingResult{}, err
	}

	rec, err := Recommend(rules, snap, breakevenPrice, actualBE)
	if err != nil {
		return model.PricingResult{}, err
	}

	year, month := snap.AnchorDate.Year(), int(snap.AnchorDate.Month())
	displayed, overrideInfo, err := ResolveOverride(e.Overrides, snap.Name, year, month, rec.CalculatedPrice)
	if err != nil {
		return model.PricingResult{}, dataNotFound(snap.Name, "override lookup", err)
	}

	res := model.PricingResult{
		Location:   snap.Name,
		AnchorDate: snap.AnchorDate,
		Year:       year,
		Month:      month,

		OccupancyPct:           snap.AvgOccupancy7d,
		ActualBreakevenPct:     actualBE,
		TargetBreakevenPct:     target,
		TargetMode:             mode,
		SoldPricePerSeatActual: snap.SoldPricePerSeatActual,

		DynamicMultiplier: rec.TierMultiplier,
		BreakevenPrice:    rec.BreakevenPrice,
		BasePrice:         rec.BasePrice,
		CalculatedPrice:   rec.CalculatedPrice,
		Clamped:           rec.Clamped,
		BottomPrice:       rec.BottomPrice,

		RecommendedPrice: displayed,
		IsOverride:       overrideInfo != nil,
		Override:         overrideInfo,

		IsLosingMoney: rec.IsLosingMoney,
	}

	if e.Published != nil {
		if pub, err := e.Published.PublishedPriceFor(snap.Name, year, month); err == nil {
			res.PublishedPrice = pub
		} else {
			log.Debug().Str("location", snap.Name).Err(err).Msg("published price lookup failed")
		}
	}
	if e.Reasoner != nil {
		res.Reasoning = e.Reasoner.Reasoning(res)
	}
	return res, nil
}
