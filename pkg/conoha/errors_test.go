package conoha_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conoha-io/conoha-go/pkg/conoha"
)

func TestMapStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantKind   conoha.ErrorKind
		wantMsg    string
	}{
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			body:       `{"error": {"message": "flavorRef is required"}}`,
			wantKind:   conoha.ErrorKindBadRequest,
			wantMsg:    "flavorRef is required",
		},
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error": {"message": "invalid credentials"}}`,
			wantKind:   conoha.ErrorKindAuthentication,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			body:       `{"message": "quota exceeded"}`,
			wantKind:   conoha.ErrorKindForbidden,
			wantMsg:    "quota exceeded",
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       `{"message": "no such server"}`,
			wantKind:   conoha.ErrorKindNotFound,
			wantMsg:    "no such server",
		},
		{
			name:       "conflict",
			statusCode: http.StatusConflict,
			body:       `{"message": "server is locked"}`,
			wantKind:   conoha.ErrorKindConflict,
			wantMsg:    "server is locked",
		},
		{
			name:       "unrecognized status falls back to api kind",
			statusCode: http.StatusServiceUnavailable,
			body:       "",
			wantKind:   conoha.ErrorKindAPI,
			wantMsg:    "HTTP 503",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := conoha.MapStatusError(tt.statusCode, []byte(tt.body))
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Message)
		})
	}
}

func TestExtractErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "nested error envelope",
			body: `{"error": {"message": "invalid credentials"}}`,
			want: "invalid credentials",
		},
		{
			name: "flat message envelope",
			body: `{"message": "quota exceeded"}`,
			want: "quota exceeded",
		},
		{
			name: "nested envelope wins over flat",
			body: `{"error": {"message": "nested"}, "message": "flat"}`,
			want: "nested",
		},
		{
			name: "plain text body",
			body: "upstream timeout",
			want: "upstream timeout",
		},
		{
			name: "JSON without a known envelope",
			body: `{"detail": "unknown shape"}`,
			want: `{"detail": "unknown shape"}`,
		},
		{
			name: "empty body",
			body: "",
			want: "HTTP 502",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conoha.ExtractErrorMessage(http.StatusBadGateway, []byte(tt.body))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	withStatus := conoha.NewError(conoha.ErrorKindNotFound, 404, "no such server")
	assert.Equal(t, "conoha: not_found (status: 404): no such server", withStatus.Error())

	withoutStatus := conoha.NewError(conoha.ErrorKindEndpoint, 0, "no endpoint for service \"dns\"")
	assert.Equal(t, `conoha: endpoint: no endpoint for service "dns"`, withoutStatus.Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  conoha.ErrorKind
		check func(error) bool
	}{
		{conoha.ErrorKindAuthentication, conoha.IsAuthentication},
		{conoha.ErrorKindTokenExpired, conoha.IsTokenExpired},
		{conoha.ErrorKindBadRequest, conoha.IsBadRequest},
		{conoha.ErrorKindForbidden, conoha.IsForbidden},
		{conoha.ErrorKindNotFound, conoha.IsNotFound},
		{conoha.ErrorKindConflict, conoha.IsConflict},
		{conoha.ErrorKindEndpoint, conoha.IsEndpointNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			err := conoha.NewError(tt.kind, 0, "boom")
			assert.True(t, tt.check(err))

			other := conoha.NewError(conoha.ErrorKindAPI, 500, "boom")
			assert.False(t, tt.check(other))
		})
	}

	t.Run("wrapped errors unwrap", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("getting server: %w", conoha.NewError(conoha.ErrorKindNotFound, 404, "no such server"))
		assert.True(t, conoha.IsNotFound(wrapped))
	})

	t.Run("plain errors do not match", func(t *testing.T) {
		t.Parallel()

		require.False(t, conoha.IsNotFound(fmt.Errorf("plain")))
	})
}
