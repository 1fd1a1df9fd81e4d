// Package utils provides small helpers shared by the sync packages:
// loose value conversion for destination field values and slice chunking
// for batched API calls.
package utils
