package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Auth   string
	Body   []byte
}

func newTestServer(t *testing.T, respond func(w http.ResponseWriter, r *http.Request, n int)) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		respond(w, r, len(captured))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{APIKey: "key123", BaseID: "appBASE", BaseURL: srv.URL + "/v0/"}, zap.NewNop())
	return c, &captured
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestList_FollowsOffsets(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		if n == 1 {
			writeJSON(w, http.StatusOK, map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{"ID": "1"}}},
				"offset":  "itrNEXT",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"records": []map[string]any{{"id": "rec2", "fields": map[string]any{"ID": "2"}}},
		})
	})

	records, err := c.List(context.Background(), "Boardgames", ListOptions{
		FilterByFormula: "OR({ID} = '1')",
		Fields:          []string{"ID"},
		PageSize:        100,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "2", records[1].Fields["ID"])

	reqs := *captured
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/v0/appBASE/Boardgames", reqs[0].Path)
	assert.Equal(t, "Bearer key123", reqs[0].Auth)
	assert.Equal(t, []string{"OR({ID} = '1')"}, reqs[0].Query["filterByFormula"])
	assert.Equal(t, []string{"ID"}, reqs[0].Query["fields[]"])
	assert.Equal(t, []string{"100"}, reqs[0].Query["pageSize"])
	assert.Empty(t, reqs[0].Query["offset"])
	assert.Equal(t, []string{"itrNEXT"}, reqs[1].Query["offset"])
}

func TestList_EscapesTableName(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
	})

	records, err := c.List(context.Background(), "My Games", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "/v0/appBASE/My%20Games", (*captured)[0].Path)
}

func TestCreate_SendsTypecast(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{
			"records": []map[string]any{{"id": "recA", "fields": map[string]any{"ID": "7"}}},
		})
	})

	created, err := c.Create(context.Background(), "Expansions", []Fields{{"ID": "7", "Name": "Seven"}}, true)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "recA", created[0].ID)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"records":[{"fields":{"ID":"7","Name":"Seven"}}],"typecast":true}`, string(req.Body))
}

func TestUpdate_PatchesRecords(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
	})

	_, err := c.Update(context.Background(), "Boardgames", []Record{
		{ID: "recA", Fields: Fields{"Integrations": []string{"recX"}}},
	})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `{"records":[{"id":"recA","fields":{"Integrations":["recX"]}}]}`, string(req.Body))
}

func TestUpdate_RejectsRecordWithoutID(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
	})

	_, err := c.Update(context.Background(), "Boardgames", []Record{{Fields: Fields{"Name": "x"}}})
	assert.Error(t, err)
	assert.Empty(t, *captured)
}

func TestDestroy_SendsRecordList(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{"records": []map[string]any{{"id": "rec1", "deleted": true}}})
	})

	err := c.Destroy(context.Background(), "Boardgames", []string{"rec1", "rec2"})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, []string{"rec1", "rec2"}, req.Query["records[]"])
	assert.Empty(t, req.Body)
}

func TestMutations_EnforceBatchLimit(t *testing.T) {
	c, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
	})
	ctx := context.Background()

	ids := make([]string, MaxBatchSize+1)
	fields := make([]Fields, MaxBatchSize+1)
	records := make([]Record, MaxBatchSize+1)
	for i := range ids {
		ids[i] = "rec"
		fields[i] = Fields{}
		records[i] = Record{ID: "rec"}
	}

	_, err := c.Create(ctx, "T", fields, true)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
	_, err = c.Update(ctx, "T", records)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
	err = c.Destroy(ctx, "T", ids)
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	assert.Empty(t, *captured)
}

func TestAPIError_DetailedShape(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]any{"type": "INVALID_VALUE_FOR_COLUMN", "message": "Field \"Min Players\" cannot accept the provided value"},
		})
	})

	_, err := c.Create(context.Background(), "Boardgames", []Fields{{"Min Players": "x"}}, false)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "INVALID_VALUE_FOR_COLUMN", apiErr.Type)
	assert.Contains(t, apiErr.Message, "Min Players")
	assert.Contains(t, err.Error(), "status 422")
}

func TestAPIError_CodeShape(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	})

	_, err := c.List(context.Background(), "Missing", ListOptions{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Type)
}

func TestAPIError_PlainBody(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request, n int) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := c.Destroy(context.Background(), "Boardgames", []string{"rec1"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestMatchAnyFormula(t *testing.T) {
	assert.Equal(t, "FALSE()", MatchAnyFormula("ID", nil))
	assert.Equal(t, "OR({ID} = '1',{ID} = '2')", MatchAnyFormula("ID", []string{"1", "2"}))
	assert.Equal(t, `OR({Name} = 'it\'s')`, MatchAnyFormula("Name", []string{"it's"}))
}
