// Package schedule extracts wall-type and door/window schedule rows from
// detected tables.
//
// Plan schedules never agree on column naming: one set labels studs
// "STUD", another "STUD SIZE", a third "FRAMING". Header cells are
// therefore mapped to semantic fields fuzzily: each field carries a
// pattern tried against every header cell, with a substring match on the
// field's own name as the fallback. Unmapped columns are ignored.
//
// # Row Filtering
//
// A data row missing its key column (wall type, opening mark) is dropped
// silently; partial rows are expected fallout of alignment-based table
// detection, not errors.
//
// # Coercions and Defaults
//
// Cell values are coerced defensively: stud sizes through a nominal-size
// pattern, spacing through a trailing-OC pattern or the {12, 16, 24}
// whitelist, dimensions through the dimension parser with a bare-number
// fallback. Unparsable values fall back to documented defaults (8 ft wall
// height, 16 in spacing, one of each opening), and every default
// substitution is recorded as a warning on the output.
package schedule
