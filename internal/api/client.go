package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"banking-client/internal/models/transfers"
	"banking-client/internal/models/users"
)

const (
	LoginURL    = "/login"
	RegisterURL = "/register"
	BalanceURL  = "/balance"
	UsersURL    = "/users"
	TransferURL = "/transfer"
	DepositURL  = "/deposit"

	IdempotencyKeyHeader = "Idempotency-Key"
	DefaultTimeout       = 5 * time.Second
)

const (
	LoginErrPrefix    = "Error by login User"
	RegisterErrPrefix = "Error by register new User"
	BalanceErrPrefix  = "Error by get balance User"
	UsersErrPrefix    = "Error by get Users"
	TransferErrPrefix = "Error by transfer"
	DepositErrPrefix  = "Error by deposit"
	UpdateErrPrefix   = "Error by update User"
)

// Client talks to the banking backend. It holds no session: every
// authenticated call takes the bearer token explicitly.
type Client struct {
	client  *resty.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json"),
		timeout: timeout,
		logger:  logger,
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

func (c *Client) Login(ctx context.Context, creds users.Credentials) (users.Session, error) {
	var result loginResponse

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&result).
		Post(LoginURL)

	if err := c.check(LoginErrPrefix, response, err); err != nil {
		return users.Session{}, err
	}

	if result.AccessToken == "" {
		return users.Session{}, c.fail(LoginErrPrefix, errUnexpected("access_token"))
	}

	session := users.Session{
		Token:     result.AccessToken,
		UserEmail: result.Email,
		Username:  result.Username,
	}
	if session.UserEmail == "" {
		session.UserEmail = creds.Email
	}

	return session, nil
}

func (c *Client) Register(ctx context.Context, data users.Registration) (users.Session, error) {
	var result loginResponse

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.R().
		SetContext(ctx).
		SetBody(data).
		SetResult(&result).
		Post(RegisterURL)

	if err := c.check(RegisterErrPrefix, response, err); err != nil {
		return users.Session{}, err
	}

	if result.AccessToken == "" {
		return users.Session{}, c.fail(RegisterErrPrefix, errUnexpected("access_token"))
	}

	return users.Session{
		Token:     result.AccessToken,
		UserEmail: data.Email,
		Username:  data.Username,
	}, nil
}

func (c *Client) Balance(ctx context.Context, token, email string) (users.User, error) {
	var result users.User

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("email", email).
		SetResult(&result).
		Get(BalanceURL)

	if err := c.check(BalanceErrPrefix, response, err); err != nil {
		return users.User{}, err
	}

	return result, nil
}

func (c *Client) Users(ctx context.Context, token string) ([]users.User, error) {
	result := make([]users.User, 0)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&result).
		Get(UsersURL)

	if err := c.check(UsersErrPrefix, response, err); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) Transfer(ctx context.Context, token, idempotencyKey string, req transfers.TransferRequest) (transfers.Receipt, error) {
	return c.postMoney(ctx, TransferErrPrefix, TransferURL, token, idempotencyKey, req)
}

func (c *Client) Deposit(ctx context.Context, token, idempotencyKey string, req transfers.DepositRequest) (transfers.Receipt, error) {
	return c.postMoney(ctx, DepositErrPrefix, DepositURL, token, idempotencyKey, req)
}

func (c *Client) UpdateUser(ctx context.Context, token string, update users.Update) (users.User, error) {
	var result users.User

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(update).
		SetResult(&result).
		Put(UsersURL)

	if err := c.check(UpdateErrPrefix, response, err); err != nil {
		return users.User{}, err
	}

	return result, nil
}

func (c *Client) postMoney(ctx context.Context, prefix, url, token, idempotencyKey string, body any) (transfers.Receipt, error) {
	var result transfers.Receipt

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&result)

	if idempotencyKey != "" {
		request.SetHeader(IdempotencyKeyHeader, idempotencyKey)
	}

	response, err := request.Post(url)

	if err := c.check(prefix, response, err); err != nil {
		return transfers.Receipt{}, err
	}

	return result, nil
}

func (c *Client) check(prefix string, response *resty.Response, err error) error {
	mapped := mapResponseError(response, err)
	if mapped != nil {
		return c.fail(prefix, mapped)
	}

	return nil
}

func (c *Client) fail(prefix string, err error) error {
	if c.logger != nil {
		c.logger.Warn(fmt.Sprintf("%s - %v", prefix, err))
	}

	return err
}
