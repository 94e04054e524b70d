// Package fakebank is an in-memory banking backend speaking the same REST
// contract as the real one. It backs the client tests and `bankcli` demos.
package fakebank

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"banking-client/internal/auth"
	"banking-client/internal/models/money"
	"banking-client/internal/models/users"
)

const DefaultSecret = "fakebank-secret"

type ResponseType struct {
	LogMsg string
	Body   string
	Code   int
}

type account struct {
	user users.User
	hash []byte
}

type Bank struct {
	mu        sync.Mutex
	secret    string
	currency  string
	accounts  map[string]*account
	processed map[string]ResponseType
	nextID    int
	logger    *slog.Logger
}

func New(secret, currency string, logger *slog.Logger) *Bank {
	if secret == "" {
		secret = DefaultSecret
	}

	return &Bank{
		secret:    secret,
		currency:  currency,
		accounts:  map[string]*account{},
		processed: map[string]ResponseType{},
		logger:    logger,
	}
}

// Seed creates an account directly, bypassing /register.
func (b *Bank) Seed(email, username, password string, balance money.Money) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("unable hash password - %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.addAccount(users.User{
		Username: username,
		Email:    email,
		Balance:  balance,
		Currency: b.currency,
	}, hash)

	return nil
}

// BalanceOf reports the stored balance of email.
func (b *Bank) BalanceOf(email string) (money.Money, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.accounts[strings.ToLower(email)]
	if !ok {
		return 0, false
	}

	return acc.user.Balance, true
}

func (b *Bank) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/login", b.handle(b.login))
	r.Post("/register", b.handle(b.register))
	r.Group(func(r chi.Router) {
		r.Get("/balance", b.authorized(b.balance))
		r.Get("/users", b.authorized(b.listUsers))
		r.Put("/users", b.authorized(b.updateUser))
		r.Post("/transfer", b.authorized(b.transfer))
		r.Post("/deposit", b.authorized(b.deposit))
	})

	return r
}

func (b *Bank) handle(fn func(r *http.Request) ResponseType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.sendResponse(fn(r), w)
	}
}

func (b *Bank) authorized(fn func(r *http.Request, claims *auth.Claims) ResponseType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.ClaimsFromAuthHeader(r.Header.Get("Authorization"), b.secret)
		if err != nil {
			b.sendResponse(detail(http.StatusUnauthorized, "Could not validate credentials",
				fmt.Sprintf("error by Authorization - %v", err)), w)
			return
		}

		b.sendResponse(fn(r, claims), w)
	}
}

func (b *Bank) sendResponse(res ResponseType, writer http.ResponseWriter) {
	if len(res.LogMsg) > 0 && b.logger != nil {
		b.logger.Info(res.LogMsg)
	}

	if len(res.Body) > 0 {
		writer.Header().Set("Content-Type", "application/json")
	}

	if res.Code > 0 {
		writer.WriteHeader(res.Code)
	}

	if len(res.Body) > 0 {
		writer.Write([]byte(res.Body))
	}
}

func (b *Bank) addAccount(u users.User, hash []byte) *account {
	b.nextID++
	u.ID = b.nextID
	u.CreatedAt = users.Timestamp{Time: time.Now().UTC().Truncate(time.Second)}

	acc := &account{user: u, hash: hash}
	b.accounts[strings.ToLower(u.Email)] = acc

	return acc
}

func (b *Bank) token(u users.User) (string, error) {
	return auth.BuildJWTString(fmt.Sprint(u.ID), u.Email, b.secret, auth.TokenExp)
}

func (b *Bank) sortedUsers() []users.User {
	list := make([]users.User, 0, len(b.accounts))
	for _, acc := range b.accounts {
		list = append(list, acc.user)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})

	return list
}

func jsonBody(code int, v any, logMsg string) ResponseType {
	body, err := json.Marshal(v)
	if err != nil {
		return ResponseType{
			LogMsg: fmt.Sprintf("cannot encode response JSON body - %v", err),
			Code:   http.StatusInternalServerError,
		}
	}

	return ResponseType{
		LogMsg: logMsg,
		Code:   code,
		Body:   string(body),
	}
}

func detail(code int, message, logMsg string) ResponseType {
	return jsonBody(code, map[string]string{"detail": message}, logMsg)
}
