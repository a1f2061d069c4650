// Package display draws a bough scene. [Rasterize] and [Canvas] paint frames
// into an image with rasterx; [Run] opens an Ebitengine window that advances
// the scene once per tick.
//
// Leaves are drawn by descriptor kind: bars from the zero baseline, lines
// as strokes clipped to the frame's clip rectangle, and anything else as
// points. The "color" prop sets a leaf's colour; datum "opacity", "size"
// and "color" fields refine single marks.
package display
