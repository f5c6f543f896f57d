// Package listing defines the marketplace-neutral listing model shared by the
// export readers, the reconciler, and the relisting selector.
//
// A Record is an immutable snapshot of one row from one marketplace export.
// Records are rebuilt from scratch on every run; nothing mutates them in
// place. The product key embedded in listing text is the only identity that
// crosses marketplace boundaries, so key extraction lives here alongside the
// normalized lifecycle states.
package listing
