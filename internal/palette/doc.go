// Package palette turns decoded images into small representative color
// palettes.
//
// Normalize converts any decoder output into a Buffer with one of two channel
// layouts (RGB or RGBA); Extract samples the buffer, short-circuits images
// with few distinct colors, and hands the rest to a Quantizer. The default
// MedianCut quantizer is deterministic, so identical input always yields the
// same palette in the same order. Dominant and KMeans wrap third-party
// clustering libraries and trade determinism for a different color pick.
package palette
