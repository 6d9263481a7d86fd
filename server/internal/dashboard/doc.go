// Package dashboard orchestrates the analytics engines for the server.
//
// A Service owns the current dataset and rebuilds dashboards on demand:
// supplier metrics first, then every derivation that depends on them in
// parallel. Finished dashboards are cached per filter set and handed to the
// alert engine. Reload swaps in a new dataset atomically; requests already
// in flight finish against the dataset they started with.
package dashboard
