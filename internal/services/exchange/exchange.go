package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"banking-client/internal/errs"
)

const (
	APITimeout   = 5 * time.Second
	ResultOK     = "success"
	NotAvailable = "N/A"

	CodesErrPrefix   = "Error by get supported codes"
	ConvertErrPrefix = "Error by convert amount"
	PairErrPrefix    = "Error by get pair rate"

	ratesConcurrency = 5
)

var (
	buyMargin  = decimal.RequireFromString("0.98")
	sellMargin = decimal.RequireFromString("1.02")
)

type Country struct {
	Name     string
	Currency string
}

// Countries is the default rate-table row set.
var Countries = []Country{
	{Name: "USA", Currency: "USD"},
	{Name: "United Kingdom", Currency: "GBP"},
	{Name: "Japan", Currency: "JPY"},
	{Name: "France", Currency: "EUR"},
	{Name: "China", Currency: "CNY"},
	{Name: "Canada", Currency: "CAD"},
	{Name: "Nigeria", Currency: "NGN"},
	{Name: "South Africa", Currency: "ZAR"},
	{Name: "India", Currency: "INR"},
	{Name: "Germany", Currency: "EUR"},
	{Name: "Brazil", Currency: "BRL"},
	{Name: "Russia", Currency: "RUB"},
	{Name: "Mexico", Currency: "MXN"},
	{Name: "Australia", Currency: "AUD"},
	{Name: "Turkey", Currency: "TRY"},
	{Name: "South Korea", Currency: "KRW"},
	{Name: "Ghana", Currency: "GHS"},
	{Name: "Switzerland", Currency: "CHF"},
	{Name: "Sweden", Currency: "SEK"},
	{Name: "Kenya", Currency: "KES"},
}

type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Rate is one rate-table row. Buy and Sell are "N/A" when the pair lookup failed.
type Rate struct {
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Buy      string `json:"buy"`
	Sell     string `json:"sell"`
}

type apiResponse struct {
	Result           string          `json:"result"`
	ErrorType        string          `json:"error-type"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
	ConversionResult decimal.Decimal `json:"conversion_result"`
	SupportedCodes   [][]string      `json:"supported_codes"`
}

type Service struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = APITimeout
	}

	return &Service{
		client:  resty.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *Service) Codes(ctx context.Context) ([]Currency, error) {
	data, err := s.get(ctx, CodesErrPrefix, "codes")
	if err != nil {
		return nil, err
	}

	result := make([]Currency, 0, len(data.SupportedCodes))
	for _, pair := range data.SupportedCodes {
		if len(pair) < 2 {
			continue
		}
		result = append(result, Currency{Code: pair[0], Name: pair[1]})
	}

	return result, nil
}

// Convert returns amount in `to`, rounded to 2 decimals.
func (s *Service) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (string, error) {
	data, err := s.get(ctx, ConvertErrPrefix, "pair", from, to, amount.String())
	if err != nil {
		return "", err
	}

	return data.ConversionResult.StringFixed(2), nil
}

func (s *Service) Pair(ctx context.Context, from, to string) (decimal.Decimal, error) {
	data, err := s.get(ctx, PairErrPrefix, "pair", from, to)
	if err != nil {
		return decimal.Zero, err
	}

	return data.ConversionRate, nil
}

// RatesTable looks up base→country rates concurrently. A failed lookup
// yields an "N/A" row instead of an error; row order follows countries.
func (s *Service) RatesTable(ctx context.Context, base string, countries []Country) []Rate {
	rates := make([]Rate, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ratesConcurrency)

	for i, c := range countries {
		i, c := i, c

		g.Go(func() error {
			rates[i] = Rate{Country: c.Name, Currency: c.Currency, Buy: NotAvailable, Sell: NotAvailable}

			rate, err := s.Pair(gctx, base, c.Currency)
			if err != nil {
				return nil
			}

			rates[i].Buy = rate.Mul(buyMargin).StringFixed(3)
			rates[i].Sell = rate.Mul(sellMargin).StringFixed(3)

			return nil
		})
	}

	_ = g.Wait()

	return rates
}

func (s *Service) get(ctx context.Context, prefix string, parts ...string) (apiResponse, error) {
	var result apiResponse

	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, s.baseURL, url.PathEscape(s.apiKey))
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}

	contextWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.client.R().
		SetContext(contextWithTimeout).
		SetResult(&result).
		SetError(&result).
		Get(strings.Join(segments, "/"))

	if err != nil {
		return result, s.fail(prefix, &errs.NetworkError{Err: err})
	}

	if result.Result != ResultOK {
		message := result.ErrorType
		if message == "" {
			message = "Unknown error."
		}

		return result, s.fail(prefix, &errs.BusinessError{Status: response.StatusCode(), Message: message})
	}

	return result, nil
}

func (s *Service) fail(prefix string, err error) error {
	if s.logger != nil {
		s.logger.Warn(fmt.Sprintf("%s - %v", prefix, err))
	}

	return err
}
