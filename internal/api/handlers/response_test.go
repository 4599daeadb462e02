package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string  `json:"name" validate:"required,max=5"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"name":"turf","amount":10}`},
		{name: "empty", body: ``, wantErr: ErrEmptyBody},
		{name: "whitespace only", body: " \n\t", wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, wantErr: ErrInvalidBody},
		{name: "unknown field", body: `{"name":"turf","color":"green"}`, wantErr: ErrInvalidBody},
		{name: "missing required", body: `{"amount":10}`, wantErr: ErrValidation},
		{name: "negative amount", body: `{"name":"turf","amount":-1}`, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sampleRequest
			err := DecodeJSON(req, &dst)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "turf", dst.Name)
		})
	}
}

func TestDecodeJSON_EmptyBodyWithoutNoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Body = io.NopCloser(strings.NewReader(""))
	require.NotEqual(t, http.NoBody, req.Body)

	var dst sampleRequest
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, rec.Body.String())
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"venueId": "42"})
	id, err := PathID(req, "venueId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"venueId": raw})
		_, err := PathID(req, "venueId")
		assert.ErrorIs(t, err, ErrInvalidPath, raw)
	}
}

func TestQueryDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2026-10-19&bad=19.10.2026", nil)

	date, err := QueryDate(req, "from")
	require.NoError(t, err)
	assert.Equal(t, 19, date.Day())

	_, err = QueryDate(req, "bad")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = QueryDate(req, "to")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
