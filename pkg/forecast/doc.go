// Package forecast projects supplier metrics forward.
//
// It turns the output of the compute engine into three-period forecasts
// (on-time delivery and inventory turnover), per-supplier risk outlooks,
// population benchmarks and rule-based insights. Everything here is a pure
// transformation of its inputs; the only nondeterminism comes from the
// injected random source, used for confidence figures and trend factors.
package forecast
