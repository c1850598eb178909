// Package include splices named HTML fragments into a document.
//
// Elements carrying the marker attribute (x-include by default) are handled
// one at a time in document order:
//
//	<div x-include="header"></div>
//
// loads "<base>header.html", moves every inline <script> body into a new
// script element placed before the div, replaces the div's children with the
// remaining markup and removes the marker. Processed markup is cached by
// name for the lifetime of the Includer, so repeated names are never loaded
// twice and always produce the same bytes.
package include
