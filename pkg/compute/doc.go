// Package compute derives supplier performance metrics and KPIs from raw
// shipment records.
//
// status.go holds the pure classification rules: the excellent/good/poor
// thresholds and the KPI heuristics (15% savings potential on poor
// suppliers, health score on a 0–10 scale).
//
// engine.go provides Engine, which holds an immutable Dataset and an
// injectable random source. Every method is a pure transformation of its
// inputs; results are fresh slices the caller may keep.
//
// Status thresholds: Excellent ≥90% on time and ≤1.5% defects, Good ≥80% and
// ≤3%, Poor otherwise. Both bounds are inclusive.
package compute
