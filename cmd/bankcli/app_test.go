package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"banking-client/internal/config"
	"banking-client/internal/errs"
	"banking-client/internal/fakebank"
	"banking-client/internal/logging"
	"banking-client/internal/models/money"
	"banking-client/internal/store/memory"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *fakebank.Bank) {
	t.Helper()

	bank := fakebank.New("", "XAF", logging.Discard())
	require.NoError(t, bank.Seed("ann@bank.io", "ann", "Secret123", money.FromMajor(100)))
	require.NoError(t, bank.Seed("bob@bank.io", "bob", "Secret123", 0))

	srv := httptest.NewServer(bank.Router())
	t.Cleanup(srv.Close)

	params := config.Default()
	params.BackendAddr = srv.URL
	params.SessionStore = "memory://"

	out := &bytes.Buffer{}
	a := newApp(params, memory.NewStore(), out, logging.Discard())
	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})

	return a, out, bank
}

func TestApp_Run(t *testing.T) {
	ctx := context.Background()
	a, out, bank := newTestApp(t)

	require.NoError(t, a.Run(ctx, []string{"login", "-email", "ann@bank.io", "-password", "Secret123"}))
	require.Contains(t, out.String(), "Welcome back, ann")

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"transfer", "-to", "bob@bank.io", "-amount", "25"}))
	require.Contains(t, out.String(), "Transfer successful")

	bobBalance, ok := bank.BalanceOf("bob@bank.io")
	require.True(t, ok)
	require.Equal(t, money.FromMajor(25), bobBalance)

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"balance"}))
	require.Equal(t, "ann: 75.00 XAF\n", out.String())

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"history", "-kind", "transfer"}))
	require.Contains(t, out.String(), `"succeeded"`)
	require.Contains(t, out.String(), "bob@bank.io")

	var valErr *errs.ValidationError
	require.ErrorAs(t, a.Run(ctx, []string{"transfer", "-to", "ann@bank.io", "-amount", "1"}), &valErr)

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"beneficiary", "add", "-name", "Bob", "-email", "bob@bank.io"}))
	require.NotEmpty(t, out.String())

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"beneficiary", "list"}))
	require.Contains(t, out.String(), "bob@bank.io")

	require.NoError(t, a.Run(ctx, []string{"logout"}))
	require.ErrorIs(t, a.Run(ctx, []string{"balance"}), errs.ErrNoSession)
}

func TestApp_RunUnknown(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "1 no command",
			args: nil,
		},
		{
			name: "2 unknown command",
			args: []string{"withdraw"},
		},
		{
			name: "3 unknown nested command",
			args: []string{"profile", "delete"},
		},
		{
			name: "4 missing nested command",
			args: []string{"beneficiary"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t)

			require.ErrorIs(t, a.Run(context.Background(), tt.args), errUnknownCommand)
		})
	}
}

func TestApp_WatchRejectsNonPositiveInterval(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)

	require.NoError(t, a.Run(ctx, []string{"login", "-email", "ann@bank.io", "-password", "Secret123"}))

	for _, interval := range []string{"0s", "-1s"} {
		err := a.Run(ctx, []string{"watch", "-i", interval})
		require.ErrorContains(t, err, "refresh interval must be positive")
	}

	require.Nil(t, a.observer)
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr bool
	}{
		{
			name: "1 memory",
			dsn:  "memory://",
		},
		{
			name: "2 sqlite",
			dsn:  "sqlite://" + filepath.Join(t.TempDir(), "session.db"),
		},
		{
			name:    "3 sqlite without path",
			dsn:     "sqlite://",
			wantErr: true,
		},
		{
			name:    "4 unknown scheme",
			dsn:     "ftp://session",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := openStore(context.Background(), tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NoError(t, s.Close())
		})
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := parseLocation("", "")
	require.NoError(t, err)
	require.Nil(t, loc)

	loc, err = parseLocation("3.86", "11.52")
	require.NoError(t, err)
	require.Equal(t, 3.86, loc.Lat)
	require.Equal(t, 11.52, loc.Lng)

	_, err = parseLocation("3.86", "")
	require.Error(t, err)
}

func TestSeedAccounts(t *testing.T) {
	bank := fakebank.New("", "XAF", logging.Discard())

	require.NoError(t, seedAccounts(bank, "ann@bank.io:ann:Secret123:12.50, bob@bank.io:bob:Secret123:0"))

	balance, ok := bank.BalanceOf("ann@bank.io")
	require.True(t, ok)
	require.Equal(t, money.Money(1250), balance)

	require.Error(t, seedAccounts(bank, "broken"))
	require.Error(t, seedAccounts(bank, "cid@bank.io:cid:Secret123:lots"))
}
