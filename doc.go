// Package fragments assembles pages from named HTML fragments and fills in
// delimiter-bound expressions in their text.
//
// A Pipeline runs two passes over a parsed document:
//
//  1. include: every element carrying x-include="name" receives the markup of
//     "<base>name.html"; inline scripts become script elements placed ahead
//     of the element, and processed fragments are cached by name.
//  2. interpolation: an in-process host binds x-interp (re-rendered on every
//     data change) and x-interpolate (split once into x-text spans).
//
// Typical use:
//
//	cfg := config.Default()
//	cfg.Base = "parts/"
//	p, err := fragments.NewPipeline(cfg, fragments.WithFileSystem(os.DirFS("site")))
//	if err != nil {
//		return err
//	}
//	return p.Process(ctx, page, os.Stdout)
package fragments
