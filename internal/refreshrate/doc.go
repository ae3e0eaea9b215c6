// Package refreshrate implements a display compositor's refresh-rate
// selection policy: scoring and arbitration over display modes, layer
// votes, and global signals to choose a single mode, plus per-owner
// frame-rate override resolution.
//
// The package performs no I/O and drives no hardware; it is a pure,
// mutex-guarded decision engine meant to be embedded in a compositor
// process or served over the HTTP surface in internal/api/http.
package refreshrate
