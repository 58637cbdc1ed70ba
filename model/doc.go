// Package model provides the geometric primitives used for text
// placement.
//
// All coordinates follow the PDF convention: the origin sits at the
// lower-left corner of the page and Y grows upward. Text boxes are
// anchored at their upper-left corner, so [NewBBoxFromTopLeft] is the
// usual way layout code builds rectangles.
//
// # Geometry
//
//   - [Point] - 2D point with offset and distance helpers
//   - [BBox] - axis-aligned rectangle with edge, corner and overlap
//     queries
//   - [Matrix] - 2D affine transformation in PDF [a b c d e f] order
//
// Rotation about an arbitrary pivot, as needed for rotated text boxes,
// composes through [RotateAround]:
//
//	m := model.RotateAround(angle, box.BottomRight())
//	p := m.Transform(model.Point{X: 10, Y: 20})
//
// # Color
//
// [Color] carries RGB components in [0, 1] to match the PDF rg/RG
// operators. [ParseColor] accepts the "RRGGBB" hex form used by inline
// markup.
package model
