// Package viz is the presentation layer: display rounding, styled
// terminal reports and ASCII deviation plots.
//
// Nothing here feeds back into a run. Display rounding is applied to
// copies of the values only.
package viz
