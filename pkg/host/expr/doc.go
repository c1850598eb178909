// Package expr evaluates the small expression language used in directive
// attributes and interpolated text.
package expr
