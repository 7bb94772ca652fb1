// Package sheet orchestrates a full generation run.
//
// A Builder is initialized once with the payloads to encode, then run to
// produce output files. Initialization validates the configuration, loads
// the template and logo and encodes every payload up front, so a run
// either fails before any file is touched or writes a complete set:
//
//	builder := sheet.NewBuilder(settings, printProgress)
//	if err := builder.Initialize(ctx, model.Sequence(20)); err != nil { ... }
//	if err := builder.Run(ctx); err != nil { ... }
//
// Pages are chosen by the template: none means a generated sheet with
// optional cut guides and crop marks, a single-slot template is cloned
// into every cell, and a multi-slot template is filled in place once per
// page.
package sheet
