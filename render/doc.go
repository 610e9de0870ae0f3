// Package render turns a model's markdown answer into styled terminal
// output with glamour. Rendering is best effort: on any failure the text is
// returned unchanged.
package render
