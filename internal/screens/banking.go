package screens

import (
	"context"
	"strings"

	"banking-client/internal/errs"
	"banking-client/internal/services/exchange"
	"banking-client/internal/services/places"
	"banking-client/internal/validate"
)

const MsgSameCurrency = "Choose two different currencies"

type ExchangeScreen struct {
	machine
	exchanger Exchanger
	base      string
}

// NewExchangeScreen builds the converter and rate table. base is the
// currency rates are quoted against.
func NewExchangeScreen(exchanger Exchanger, base string) *ExchangeScreen {
	return &ExchangeScreen{
		exchanger: exchanger,
		base:      base,
	}
}

func (s *ExchangeScreen) Codes(ctx context.Context) ([]exchange.Currency, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	codes, err := s.exchanger.Codes(ctx)

	return codes, s.finish("", err)
}

// Convert returns amount of from expressed in to, rounded to 2 decimals.
func (s *ExchangeScreen) Convert(ctx context.Context, from, to, amount string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	form := validate.Form{}
	form.Required("from", from)
	form.Required("to", to)
	value := form.Amount("amount", amount)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	if from == to {
		return "", s.finish("", errs.NewValidationError("to", MsgSameCurrency))
	}

	result, err := s.exchanger.Convert(ctx, from, to, value.Decimal())

	return result, s.finish(result, err)
}

// Rates lists buy and sell rates for the default countries. Rows whose
// lookup failed read "N/A".
func (s *ExchangeScreen) Rates(ctx context.Context) ([]exchange.Rate, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	rates := s.exchanger.RatesTable(ctx, s.base, exchange.Countries)

	return rates, s.finish("", ctx.Err())
}

type BranchScreen struct {
	machine
	finder BranchFinder
}

func NewBranchScreen(finder BranchFinder) *BranchScreen {
	return &BranchScreen{finder: finder}
}

// Search finds banks around loc. An empty result sets the "no results"
// message but is not an error.
func (s *BranchScreen) Search(ctx context.Context, loc *places.Location, query string) ([]places.Branch, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	branches, err := s.finder.NearbyBanks(ctx, loc, query)
	if err != nil {
		return nil, s.finish("", err)
	}

	message := ""
	if len(branches) == 0 {
		message = "No banks found in this area. Try expanding your search area."
	}

	return branches, s.finish(message, nil)
}
