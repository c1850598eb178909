// Package host runs directives against a parsed document without a browser.
//
// A Framework owns a flat data scope, a directive table and the list of
// effects registered by bound directives. Start binds directives in
// document order; Set changes a value and re-runs every effect, which is
// enough for server-side rendering and for exercising directive code in
// tests. The built-in x-text directive keeps an element's text equal to its
// expression.
package host
