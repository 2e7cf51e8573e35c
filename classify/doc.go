// Package classify scores plan pages against page-type heuristics.
//
// Construction sets carry no machine-readable sheet metadata; the sheet
// kind has to be inferred from what the page says. The [Classifier] scores
// a page's reconstructed text, detected tables, and parser counts against
// a declarative rule table covering ten page types, picks the highest
// score, and reports a confidence in [0, 1].
//
// # Rules
//
// A [Rule] binds a case-insensitive pattern to a page type and a weight.
// Rules marked per-occurrence score every match; the rest score once.
// [DefaultRules] is the built-in table; [LoadRules] reads a replacement
// table from YAML so the rule set can be tuned without code changes:
//
//	rules:
//	  - type: floor-plan
//	    pattern: floor\s+plan
//	    weight: 40
//	  - type: general-notes
//	    pattern: \bshall\b
//	    weight: 2
//	    per: occurrence
//
// # Structural Signals
//
// A few signals are not expressible as text patterns and are computed in
// code: the room-keyword and dimension counts boost floor plans, a table
// header mentioning both "stud" and "type" boosts wall schedules, and very
// long text with few dimensions and no tables boosts general notes.
//
// # Verdict
//
// Classification never fails. A winning raw score below [MinScore] yields
// [model.PageUnknown] with the confidence still reported; callers skip
// specialized parsing for such pages but keep the generic extractions.
package classify
