// Package interp replaces delimiter-bound expressions in text with their
// evaluated values.
//
// Two directives are registered with the host:
//
//   - x-interp re-renders descendant text nodes inside a host effect. Every
//     run starts from the text as it was first seen, so
//     "Count: {n}" renders "Count: 5" and later "Count: 7".
//   - x-interpolate runs once and turns "Hi {name}!" into the text "Hi ",
//     <span x-text="name"></span> and the text "!", leaving updates to the
//     host's live text directive.
//
// Both accept a delimiter pair as their expression (x-interp="[[]]") to
// override the default configured with WithDelimiters.
package interp
