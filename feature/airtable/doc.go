// Package airtable is a minimal client for the Airtable table REST API.
//
// It covers the four calls a collection sync needs: listing records (with a
// formula filter and offset pagination), creating records with optional
// typecasting, partially updating records and destroying records. Mutations are
// rejected client-side with ErrBatchTooLarge when they carry more than
// MaxBatchSize records; callers chunk their work accordingly.
//
// Non-2xx answers are returned as *APIError with the HTTP status and the
// error type and message reported by the API.
package airtable
