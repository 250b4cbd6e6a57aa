// Package instance holds the K per-instance square matrices that the joint
// graphical-lasso solvers estimate together.
//
// A Collection is a closed tagged union with two variants:
//
//   - *Array: K instances of one common order p (the regular case).
//   - *Dict: instances keyed by integer ids, each with its own order p_k
//     (the irregular case). Iteration follows ascending id order.
//
// Solver and metric code is written once against Collection; the stack
// arithmetic in this package (Norm, Inner, AddScaled, ...) treats a
// Collection as one long vector of its row-major buffers.
//
// Groups describes which off-diagonal entries across instances are coupled by
// the cross-instance penalty. Arrays, and Dicts whose instances share one
// order, get implicit groups (every i<j across all K); other Dicts need an
// explicit descriptor built with GroupsFromIndex.
package instance
