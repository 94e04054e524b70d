// Package screens holds one controller per app screen. A controller
// validates input, calls its collaborators and keeps an observable State.
package screens

//go:generate mockgen -destination=mocks/mock_screens.go -package=mocks banking-client/internal/screens Backend,BranchFinder,Exchanger

import (
	"context"

	"github.com/shopspring/decimal"

	"banking-client/internal/models/transfers"
	"banking-client/internal/models/users"
	"banking-client/internal/services/exchange"
	"banking-client/internal/services/places"
)

// Backend is the banking REST API, implemented by api.Client.
type Backend interface {
	Login(ctx context.Context, creds users.Credentials) (users.Session, error)
	Register(ctx context.Context, data users.Registration) (users.Session, error)
	Balance(ctx context.Context, token, email string) (users.User, error)
	Users(ctx context.Context, token string) ([]users.User, error)
	Transfer(ctx context.Context, token, idempotencyKey string, req transfers.TransferRequest) (transfers.Receipt, error)
	Deposit(ctx context.Context, token, idempotencyKey string, req transfers.DepositRequest) (transfers.Receipt, error)
	UpdateUser(ctx context.Context, token string, update users.Update) (users.User, error)
}

type Exchanger interface {
	Codes(ctx context.Context) ([]exchange.Currency, error)
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (string, error)
	RatesTable(ctx context.Context, base string, countries []exchange.Country) []exchange.Rate
}

type BranchFinder interface {
	NearbyBanks(ctx context.Context, loc *places.Location, query string) ([]places.Branch, error)
}
