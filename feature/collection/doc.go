// Package collection keeps the destination tables in step with a catalog collection.
//
// A run fetches the owned games and expansions, lists the rows already in the
// destination, and reconciles the two id sets. Stale rows are destroyed first;
// new rows are then created from their thing entries and finally patched with
// the handles of the rows they link to (games to the games they integrate
// with, expansions to the games they expand). Links are written in a second
// pass because a handle only exists once its row has been created.
//
// Every destination call carries at most Config.ChunkSize records and calls
// are issued sequentially. The first error aborts the run without rolling
// back what has already been written.
package collection
