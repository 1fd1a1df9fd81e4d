package airtable

// MaxBatchSize is the largest number of records one create, update or destroy call accepts.
const MaxBatchSize = 10

// Fields is the field payload of a record, keyed by column name.
type Fields map[string]any

// Record is a row of a table. ID is the handle assigned by Airtable on creation.
type Record struct {
	ID          string `json:"id,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
	Fields      Fields `json:"fields"`
}

// ListOptions narrows a List call.
type ListOptions struct {
	// FilterByFormula keeps only records for which the formula is truthy.
	FilterByFormula string
	// Fields limits the returned columns.
	Fields []string
	// PageSize is the number of records per page, at most 100.
	PageSize int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type createRequest struct {
	Records  []Record `json:"records"`
	Typecast bool     `json:"typecast,omitempty"`
}

type updateRequest struct {
	Records []Record `json:"records"`
}

type recordsResponse struct {
	Records []Record `json:"records"`
}
