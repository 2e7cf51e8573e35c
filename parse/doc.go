// Package parse extracts framing facts from free plan text.
//
// Every parser here is a stateless pure function of its input text:
// running one twice yields the identical result, and no parser carries
// state between calls. They operate on raw or line-reconstructed text and
// tolerate the typographic noise real plan sets carry (unicode primes,
// smart quotes, fraction glyphs, inconsistent spacing).
//
// # Parsers
//
//   - [Dimensions] - linear dimensions in feet-inches, decimal, and
//     spelled-out notations
//   - [References] - lumber sizes, engineered-wood codes, structural
//     nouns, sheathing products, hardware models, steel shapes, on-center
//     callouts
//   - [Rooms] - room and space labels
//   - [Scales] - drawing-scale callouts such as 1/4" = 1'-0"
//   - [Notes] - general-notes specification patterns, producing a
//     [model.PartialResult] of overrides, hardware, and steel callouts
//
// # Normalization
//
// All parsers normalize their input first via [Normalize], which maps
// unicode prime, quote, dash, and multiplication-sign variants to their
// ASCII forms and decomposes fraction glyphs, so the pattern tables only
// deal in ASCII.
package parse
