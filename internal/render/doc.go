// Package render turns trajectories and flip matrices into images.
//
// Flip matrices are written as binary PPM and can be converted to PNG, GIF,
// JPEG, BMP or TIFF with [Convert]. Trajectories are plotted with gonum/plot
// or previewed in the terminal with [Preview].
package render
