// Package dom wraps golang.org/x/net/html with the handful of tree
// operations the includer and the interpolator need: attribute access,
// inner HTML replacement, node construction and an iterative walk that is
// safe for arbitrarily deep documents.
package dom
