package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPExtractor_FiltersToRecognizedParams(t *testing.T) {
	srv := extractorServer(t, http.StatusOK,
		`{"role":"backend","location":"Boston","confidence":"0.93","season":"  "}`)

	params, err := NewHTTPExtractor(srv.URL).Extract(context.Background(), "backend jobs in boston")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"role": "backend", "location": "Boston"}, params)
}

func TestParseWith_UsesExtractorOutput(t *testing.T) {
	srv := extractorServer(t, http.StatusOK, `{"role":"backend","location":"Boston"}`)

	spec := ParseWith(context.Background(), NewHTTPExtractor(srv.URL), "any backend roles near boston?")
	assert.Equal(t, "backend", spec.Role)
	assert.Equal(t, "Boston", spec.Location)
	assert.Equal(t, "", spec.GeneralSearch)
}

func TestParseWith_FallsBackOnExtractorFailure(t *testing.T) {
	srv := extractorServer(t, http.StatusInternalServerError, "oops")

	spec := ParseWith(context.Background(), NewHTTPExtractor(srv.URL), "-r backend")
	assert.Equal(t, "backend", spec.Role)
}

func TestParseWith_FallsBackOnEmptyResult(t *testing.T) {
	srv := extractorServer(t, http.StatusOK, `{}`)

	spec := ParseWith(context.Background(), NewHTTPExtractor(srv.URL), "machine learning")
	assert.Equal(t, "machine learning", spec.GeneralSearch)
}

func TestParseWith_NilExtractor(t *testing.T) {
	spec := ParseWith(context.Background(), nil, "[developer] [] [] [] []")
	assert.Equal(t, "developer", spec.Role)
}
