// Package viz renders flow fields in the terminal.
//
//   - [Canvas]: braille pixel canvas, usable as a plot.Raster
//   - [Explorer]: Bubble Tea model that redraws the streamlines of a scene
//     as its vortices are moved
//   - lipgloss styles and color themes shared with the CLI
//
// # Key Bindings
//
//	Arrows/hjkl - Move the selected vortex
//	Tab         - Select the next vortex
//	+/-         - Change the selected vortex strength
//	R           - Toggle the periodic vortex row
//	T           - Cycle color themes
//	Q           - Quit
package viz
