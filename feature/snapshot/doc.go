// Package snapshot archives the raw catalog payloads fetched during a run.
// Objects are grouped per run id so a run can be replayed or audited later.
package snapshot
