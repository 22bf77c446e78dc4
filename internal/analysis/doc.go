// Package analysis inspects sampled flow profiles in frequency space.
//
// A profile of the vortex row field along a line of constant y repeats with
// the row spacing, so the dominant wavelength recovers it:
//
//	lambda, err := analysis.DominantWavelength(profile, dx)
package analysis
