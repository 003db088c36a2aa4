package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-hub/internal/upstream"
)

type payload struct {
	Title string `validate:"required,min=3,max=5"`
	Code  string `validate:"numeric"`
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		in   payload
		want string
	}{
		{name: "required", in: payload{Code: "1"}, want: "field Title is a required field"},
		{name: "min", in: payload{Title: "ab", Code: "1"}, want: "field Title must be at least 3 characters"},
		{name: "max", in: payload{Title: "abcdef", Code: "1"}, want: "field Title must be at most 5 characters"},
		{name: "numeric", in: payload{Title: "abc", Code: "x"}, want: "field Code can contain only numbers"},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(rec, req, http.StatusBadGateway, "upstream unavailable")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Status: StatusError, Error: "upstream unavailable"}, body)
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	OK(rec, req, map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"n":1}}`, rec.Body.String())
}

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("op: %w", upstream.ErrNotFound), want: http.StatusNotFound},
		{name: "unauthorized", err: upstream.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "other", err: errors.New("dial tcp: refused"), want: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			UpstreamError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("client gone writes nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := httptest.NewRecorder()
		UpstreamError(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx), errors.New("x"))
		assert.Empty(t, rec.Body.String())
	})
}
