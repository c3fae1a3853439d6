// Package models provides problem definitions: a right-hand side f(x, y)
// paired with its closed-form solution.
//
//   - [Exponential]: y' = k*y, y = y0 * e^(k*x)
//   - [Gaussian]: y' = k*x*y, y = y0 * e^(k*x^2/2)
//
// Both solutions take y0 as the value at x = 0, so runs meant to be
// compared against them should start at x0 = 0.
package models
