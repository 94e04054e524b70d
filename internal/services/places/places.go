package places

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"banking-client/internal/errs"
)

const (
	APITimeout    = 5 * time.Second
	SearchRadius  = 5000
	PlaceTypeBank = "bank"

	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"

	NearbySearchURL = "nearbysearch/json"
	TextSearchURL   = "textsearch/json"
	DetailsURL      = "details/json"

	DetailsFields = "formatted_phone_number,website,opening_hours,rating,url,international_phone_number"

	SearchErrPrefix  = "Error by search banks"
	DetailsErrPrefix = "Error by get bank details"

	detailsConcurrency = 4
)

type Location struct {
	Lat float64
	Lng float64
}

func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Branch is a bank found by the search, enriched with details when the
// details lookup succeeded.
type Branch struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Rating    float64  `json:"rating"`
	IsOpen    bool     `json:"is_open"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Phone     string   `json:"phone,omitempty"`
	Website   string   `json:"website,omitempty"`
	Hours     []string `json:"hours,omitempty"`
	GoogleURL string   `json:"google_url,omitempty"`
}

type openingHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

type place struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	Vicinity         string  `json:"vicinity"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *openingHours `json:"opening_hours"`
}

type searchResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []place `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedPhoneNumber     string        `json:"formatted_phone_number"`
		InternationalPhoneNumber string        `json:"international_phone_number"`
		Website                  string        `json:"website"`
		URL                      string        `json:"url"`
		OpeningHours             *openingHours `json:"opening_hours"`
	} `json:"result"`
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

// NearbyBanks searches banks within SearchRadius of loc. A non-blank query
// switches to text search. ZERO_RESULTS is an empty list, not an error.
func (s *Service) NearbyBanks(ctx context.Context, loc *Location, query string) ([]Branch, error) {
	if loc == nil {
		return nil, errs.ErrLocationRequired
	}

	var result searchResponse

	params := map[string]string{
		"location": loc.String(),
		"radius":   strconv.Itoa(SearchRadius),
		"key":      s.apiKey,
	}

	endpoint := NearbySearchURL
	if q := strings.TrimSpace(query); q != "" {
		endpoint = TextSearchURL
		params["query"] = q + " bank"
	} else {
		params["type"] = PlaceTypeBank
	}

	contextWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.client.R().
		SetContext(contextWithTimeout).
		SetQueryParams(params).
		SetResult(&result).
		SetError(&result).
		Get(s.baseURL + "/" + endpoint)

	if err != nil {
		return nil, s.fail(SearchErrPrefix, &errs.NetworkError{Err: err})
	}

	switch result.Status {
	case StatusOK:
	case StatusZeroResults:
		return []Branch{}, nil
	default:
		message := result.ErrorMessage
		if message == "" {
			message = result.Status
		}
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", response.StatusCode())
		}

		return nil, s.fail(SearchErrPrefix, &errs.BusinessError{
			Status:  response.StatusCode(),
			Message: "Unable to fetch bank information: " + message,
		})
	}

	branches := make([]Branch, len(result.Results))
	for i, p := range result.Results {
		branches[i] = toBranch(p)
	}

	s.enrich(ctx, branches)

	return branches, nil
}

// enrich fills details for each branch. Failed lookups leave the branch as is.
func (s *Service) enrich(ctx context.Context, branches []Branch) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)

	for i := range branches {
		i := i

		g.Go(func() error {
			if err := s.details(gctx, &branches[i]); err != nil && s.logger != nil {
				s.logger.Debug(fmt.Sprintf("%s '%s' - %v", DetailsErrPrefix, branches[i].ID, err))
			}

			return nil
		})
	}

	_ = g.Wait()
}

func (s *Service) details(ctx context.Context, branch *Branch) error {
	var result detailsResponse

	contextWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.R().
		SetContext(contextWithTimeout).
		SetQueryParams(map[string]string{
			"place_id": branch.ID,
			"fields":   DetailsFields,
			"key":      s.apiKey,
		}).
		SetResult(&result).
		Get(s.baseURL + "/" + DetailsURL)

	if err != nil {
		return err
	}

	if result.Status != StatusOK {
		return fmt.Errorf("status %q", result.Status)
	}

	branch.Phone = result.Result.FormattedPhoneNumber
	if branch.Phone == "" {
		branch.Phone = result.Result.InternationalPhoneNumber
	}
	branch.Website = result.Result.Website
	branch.GoogleURL = result.Result.URL
	if result.Result.OpeningHours != nil {
		branch.Hours = result.Result.OpeningHours.WeekdayText
	}

	return nil
}

func toBranch(p place) Branch {
	b := Branch{
		ID:        p.PlaceID,
		Name:      p.Name,
		Address:   p.FormattedAddress,
		Rating:    p.Rating,
		Latitude:  p.Geometry.Location.Lat,
		Longitude: p.Geometry.Location.Lng,
	}

	if b.Address == "" {
		b.Address = p.Vicinity
	}

	if p.OpeningHours != nil {
		b.IsOpen = p.OpeningHours.OpenNow
	}

	return b
}

func (s *Service) fail(prefix string, err error) error {
	if s.logger != nil {
		s.logger.Warn(fmt.Sprintf("%s - %v", prefix, err))
	}

	return err
}
