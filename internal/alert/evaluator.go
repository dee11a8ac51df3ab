package alert

import "CandleSentry/internal/model"

// Evaluator decides alert state transitions. Notifications are edge-triggered:
// a transition fires only when the new classification differs from the stored
// one, and the store suppresses repeats while a condition persists.
type Evaluator struct {
	store      *Store
	oversold   float64
	overbought float64
}

// NewEvaluator creates an Evaluator with the given RSI thresholds.
func NewEvaluator(store *Store, oversold, overbought float64) *Evaluator {
	return &Evaluator{store: store, oversold: oversold, overbought: overbought}
}

// EvaluateRSI applies the threshold rule to the current RSI reading.
// A value back inside the neutral band clears the stored state, re-arming
// the trigger without firing.
func (e *Evaluator) EvaluateRSI(key model.AlertKey, curr float64) (model.Classification, bool) {
	var fired bool
	class := e.store.Apply(key, func(prev model.Classification) model.Classification {
		switch {
		case curr < e.oversold && prev != model.ClassOversold:
			fired = true
			return model.ClassOversold
		case curr > e.overbought && prev != model.ClassOverbought:
			fired = true
			return model.ClassOverbought
		case curr >= e.oversold && curr <= e.overbought:
			return model.ClassNone
		}
		// Still in the same extreme zone: suppress.
		return prev
	})
	return class, fired
}

// EvaluateCrossover applies the sign-change rule to a fast/slow series pair
// (MACD vs signal, or fast EMA vs slow SMA).
func (e *Evaluator) EvaluateCrossover(key model.AlertKey, prevFast, prevSlow, currFast, currSlow float64) (model.Classification, bool) {
	var fired bool
	class := e.store.Apply(key, func(prev model.Classification) model.Classification {
		switch {
		case prevFast < prevSlow && currFast > currSlow && prev != model.ClassBullish:
			fired = true
			return model.ClassBullish
		case prevFast > prevSlow && currFast < currSlow && prev != model.ClassBearish:
			fired = true
			return model.ClassBearish
		case (prevFast < prevSlow && currFast < currSlow) || (prevFast > prevSlow && currFast > currSlow):
			// No crossover this step: clear the stored state even while the
			// pair is still on the side of the last crossover. A later move
			// in the same direction after a flat cycle will fire again; this
			// is intentional observable behavior, do not "fix" it here.
			return model.ClassNone
		}
		return prev
	})
	return class, fired
}
