// Package domain models a rooftop rainwater harvesting system over one
// simulated year of daily rainfall.
//
// # Units
//
// Rainfall is measured in millimeters per day, roof area in square meters,
// and water volume in liters. One millimeter of rain over one square meter
// is exactly one liter, so the per-day conversion is the unit identity
// scaled by the runoff coefficient:
//
//	harvested[i] = rainfall[i] × roof_area × runoff_coefficient
//
// The runoff coefficient is the fraction of incident rainfall that becomes
// collectible runoff; the remainder is lost to absorption, evaporation, and
// first-flush diversion, which are not modeled separately.
//
// # Rainfall model
//
// Daily rainfall is drawn independently from a normal distribution and
// clamped at zero, since rainfall cannot be negative. The clamp biases the
// realized mean slightly above the nominal mean when the standard deviation
// is large relative to it. Downstream sizing depends on the clamped
// distribution, so the bias is part of the model, not a defect.
//
// # Sizing policy
//
// [SizeStorage] runs a single forward pass over the harvested series,
// tracking the storage balance against a constant daily demand. The
// recommended capacity is the highest balance ever observed, a "size for
// the worst surplus day" policy rather than a cost-optimized search.
// Overflow is checked only after the capacity ceiling has been raised to
// the current balance, so a day that sets a new peak never overflows; see
// [SizeStorage] for the exact ordering.
//
// # Quick estimate
//
// [EstimateCollection] is a separate, simpler formula used by the one-shot
// estimate endpoint. It is intentionally not unified with the per-day
// conversion: the two produce different numbers for the same inputs and are
// exposed as distinct operations.
package domain
