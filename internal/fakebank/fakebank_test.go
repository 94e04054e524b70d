package fakebank

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"banking-client/internal/auth"
	"banking-client/internal/logging"
	"banking-client/internal/models/money"
)

func TestBank_Router(t *testing.T) {
	bank := New("", "XAF", logging.Discard())
	require.NoError(t, bank.Seed("ann@bank.io", "ann", "Secret123", money.FromMajor(100)))
	require.NoError(t, bank.Seed("bob@bank.io", "bob", "Secret123", 0))

	annToken, err := auth.BuildJWTString("1", "ann@bank.io", DefaultSecret, auth.TokenExp)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		token    string
		wantCode int
		wantBody string
	}{
		{
			name:     "1 balance without token",
			method:   http.MethodGet,
			target:   "/balance?email=ann@bank.io",
			wantCode: http.StatusUnauthorized,
			wantBody: `{"detail":"Could not validate credentials"}`,
		},
		{
			name:     "2 balance of another user",
			method:   http.MethodGet,
			target:   "/balance?email=bob@bank.io",
			token:    annToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "3 transfer on behalf of another user",
			method:   http.MethodPost,
			target:   "/transfer",
			body:     `{"sender_email":"bob@bank.io","receiver_email":"ann@bank.io","amount":1,"currency":"XAF"}`,
			token:    annToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "4 insufficient funds",
			method:   http.MethodPost,
			target:   "/transfer",
			body:     `{"sender_email":"ann@bank.io","receiver_email":"bob@bank.io","amount":100.01,"currency":"XAF"}`,
			token:    annToken,
			wantCode: http.StatusBadRequest,
			wantBody: `{"detail":"Insufficient funds"}`,
		},
		{
			name:     "5 wrong method",
			method:   http.MethodDelete,
			target:   "/users",
			token:    annToken,
			wantCode: http.StatusMethodNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", auth.BearerHeader(tt.token))
			}

			rec := httptest.NewRecorder()
			bank.Router().ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}

	balance, ok := bank.BalanceOf("ann@bank.io")
	require.True(t, ok)
	require.Equal(t, money.FromMajor(100), balance)
}
