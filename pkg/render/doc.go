// Package render draws a board page as an SVG diagram for inspecting how the
// packer laid it out.
//
// The diagram shows the canvas, the padding guide, and one rectangle per note
// footprint at its computed pixel position. Optional layers add the
// gap-expanded exclusion zone around each note and a highlight for one note.
// The output is a debugging aid and carries no note styling.
package render
