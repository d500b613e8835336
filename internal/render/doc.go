// Package render maps replay cells to visual styles.
//
// The mapping is pure: given a cell and the active [Params] it returns a
// [Style] (fill, outline, inset, draw tier). Hosts decide how a style becomes
// pixels or terminal glyphs.
//
// # Draw order
//
// Neutral cells sit below owned cells, which sit below cells at full strength.
// [DrawList] returns operations already sorted in that order.
package render
