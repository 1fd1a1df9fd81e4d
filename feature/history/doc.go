// Package history records sync runs in a SQL database through GORM.
//
// Each run gets one sync_runs row, inserted as running when the run starts and
// updated with its counters and final status when it ends. A failed run keeps
// the error text. The table works with any driver core/database supports.
package history
