// Package layout reconstructs text lines from unordered positioned items.
//
// Plan sources deliver text as disconnected tokens with positions but no
// reading order. The [Builder] groups tokens into horizontal lines by Y
// proximity, orders each line left to right, and serializes it with
// gap-aware separators so later stages see both words and crude column
// structure.
//
// # Line Grouping
//
// Items are sorted by Y descending (top of page first) with X as the
// tie-break, then walked in order: an item joins the current line when its
// Y is within max(fontSize*0.4, 2) page units of the line's anchor,
// otherwise it starts a new line. Finalized lines re-sort their items by X.
//
// # Serialization
//
// Between adjacent items the horizontal gap is compared against the
// previous item's average character width: gaps wider than 2.5 characters
// insert [ColumnSeparator] (a tab), gaps wider than 0.3 characters insert
// a space, and anything tighter concatenates directly, rejoining sub-word
// fragments.
//
//	builder := layout.NewBuilder()
//	lines := builder.Build(items)
//	text := layout.PageText(lines)
package layout
