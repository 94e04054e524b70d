package fakebank

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"banking-client/internal/auth"
	"banking-client/internal/models/transfers"
	"banking-client/internal/models/users"
	"banking-client/internal/validate"
)

const (
	LoginErrPrefix    = "Error by login User"
	RegisterErrPrefix = "Error by register new User"
	BalanceErrPrefix  = "Error by get balance User"
	TransferErrPrefix = "Error by transfer"
	DepositErrPrefix  = "Error by deposit"
	UpdateErrPrefix   = "Error by update User"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

func (b *Bank) login(r *http.Request) ResponseType {
	requestData := users.Credentials{}

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		return detail(http.StatusBadRequest, "Invalid request body",
			fmt.Sprintf("%s: unable decode json - %v", LoginErrPrefix, err))
	}

	b.mu.Lock()
	acc, ok := b.accounts[strings.ToLower(requestData.Email)]
	b.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(requestData.Password)) != nil {
		return detail(http.StatusUnauthorized, "Invalid credentials",
			fmt.Sprintf("%s: wrong pair email/password for '%s'", LoginErrPrefix, requestData.Email))
	}

	token, err := b.token(acc.user)
	if err != nil {
		return ResponseType{
			LogMsg: fmt.Sprintf("%s: unable build token - %v", LoginErrPrefix, err),
			Code:   http.StatusInternalServerError,
		}
	}

	return jsonBody(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    acc.user.Username,
		Email:       acc.user.Email,
	}, "")
}

func (b *Bank) register(r *http.Request) ResponseType {
	requestData := users.Registration{}

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		return detail(http.StatusBadRequest, "Invalid request body",
			fmt.Sprintf("%s: unable decode json - %v", RegisterErrPrefix, err))
	}

	fields := map[string][]string{}
	if !validate.Email(requestData.Email) {
		fields["email"] = []string{"Enter a valid email address."}
	}
	if !validate.Required(requestData.Username) {
		fields["username"] = []string{"This field may not be blank."}
	}
	if unmet := validate.Password(requestData.Password); len(unmet) > 0 {
		fields["password"] = unmet
	}
	if len(fields) > 0 {
		return jsonBody(http.StatusBadRequest, fields,
			fmt.Sprintf("%s: invalid fields %v", RegisterErrPrefix, fields))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.MinCost)
	if err != nil {
		return ResponseType{
			LogMsg: fmt.Sprintf("%s: unable hash password - %v", RegisterErrPrefix, err),
			Code:   http.StatusInternalServerError,
		}
	}

	b.mu.Lock()
	if _, exists := b.accounts[strings.ToLower(requestData.Email)]; exists {
		b.mu.Unlock()
		return detail(http.StatusBadRequest, "User already exists",
			fmt.Sprintf("%s: email '%s' exists", RegisterErrPrefix, requestData.Email))
	}

	acc := b.addAccount(users.User{
		Username:    requestData.Username,
		Email:       requestData.Email,
		PhoneNumber: requestData.PhoneNumber,
		Currency:    b.currency,
	}, hash)
	user := acc.user
	b.mu.Unlock()

	token, err := b.token(user)
	if err != nil {
		return ResponseType{
			LogMsg: fmt.Sprintf("%s: unable build token - %v", RegisterErrPrefix, err),
			Code:   http.StatusInternalServerError,
		}
	}

	return jsonBody(http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    user.Username,
		Email:       user.Email,
	}, fmt.Sprintf("registered '%s'", user.Email))
}

func (b *Bank) balance(r *http.Request, claims *auth.Claims) ResponseType {
	email := r.URL.Query().Get("email")
	if !strings.EqualFold(email, claims.Email) {
		return detail(http.StatusForbidden, "Not authorized to view this balance",
			fmt.Sprintf("%s: '%s' asked for '%s'", BalanceErrPrefix, claims.Email, email))
	}

	b.mu.Lock()
	acc, ok := b.accounts[strings.ToLower(email)]
	var user users.User
	if ok {
		user = acc.user
	}
	b.mu.Unlock()

	if !ok {
		return detail(http.StatusNotFound, "User not found", "")
	}

	return jsonBody(http.StatusOK, user, "")
}

func (b *Bank) listUsers(_ *http.Request, _ *auth.Claims) ResponseType {
	b.mu.Lock()
	list := b.sortedUsers()
	b.mu.Unlock()

	return jsonBody(http.StatusOK, list, "")
}

func (b *Bank) transfer(r *http.Request, claims *auth.Claims) ResponseType {
	requestData := transfers.TransferRequest{}

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		return detail(http.StatusBadRequest, "Invalid request body",
			fmt.Sprintf("%s: unable decode json - %v", TransferErrPrefix, err))
	}

	if !strings.EqualFold(requestData.SenderEmail, claims.Email) {
		return detail(http.StatusForbidden, "Not authorized to transfer from this account", "")
	}

	key := r.Header.Get("Idempotency-Key")

	b.mu.Lock()
	defer b.mu.Unlock()

	if res, ok := b.replay(key); ok {
		return res
	}

	res := b.applyTransfer(requestData)
	b.remember(key, res)

	return res
}

func (b *Bank) applyTransfer(req transfers.TransferRequest) ResponseType {
	if req.Amount <= 0 {
		return detail(http.StatusBadRequest, "Amount must be positive", "")
	}

	sender, ok := b.accounts[strings.ToLower(req.SenderEmail)]
	if !ok {
		return detail(http.StatusNotFound, "Sender not found", "")
	}

	receiver, ok := b.accounts[strings.ToLower(req.ReceiverEmail)]
	if !ok {
		return detail(http.StatusNotFound, "Receiver not found", "")
	}

	if sender == receiver {
		return detail(http.StatusBadRequest, "Cannot transfer to yourself", "")
	}

	if req.Currency != sender.user.Currency || req.Currency != receiver.user.Currency {
		return detail(http.StatusBadRequest, "Currency mismatch", "")
	}

	if sender.user.Balance < req.Amount {
		return detail(http.StatusBadRequest, "Insufficient funds",
			fmt.Sprintf("%s: '%s' has %s, wants %s", TransferErrPrefix, req.SenderEmail, sender.user.Balance, req.Amount))
	}

	sender.user.Balance -= req.Amount
	receiver.user.Balance += req.Amount

	return jsonBody(http.StatusOK, transfers.Receipt{Message: "Transfer successful"},
		fmt.Sprintf("transfer %s %s from '%s' to '%s'", req.Amount, req.Currency, req.SenderEmail, req.ReceiverEmail))
}

func (b *Bank) deposit(r *http.Request, claims *auth.Claims) ResponseType {
	requestData := transfers.DepositRequest{}

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		return detail(http.StatusBadRequest, "Invalid request body",
			fmt.Sprintf("%s: unable decode json - %v", DepositErrPrefix, err))
	}

	if !strings.EqualFold(requestData.Email, claims.Email) {
		return detail(http.StatusForbidden, "Not authorized to deposit to this account", "")
	}

	key := r.Header.Get("Idempotency-Key")

	b.mu.Lock()
	defer b.mu.Unlock()

	if res, ok := b.replay(key); ok {
		return res
	}

	var res ResponseType
	acc, ok := b.accounts[strings.ToLower(requestData.Email)]

	switch {
	case requestData.Amount <= 0:
		res = detail(http.StatusBadRequest, "Amount must be positive", "")
	case !ok:
		res = detail(http.StatusNotFound, "User not found", "")
	case requestData.Currency != acc.user.Currency:
		res = detail(http.StatusBadRequest, "Currency mismatch", "")
	default:
		acc.user.Balance += requestData.Amount
		res = jsonBody(http.StatusOK, transfers.Receipt{Message: "Deposit successful"},
			fmt.Sprintf("deposit %s %s to '%s'", requestData.Amount, requestData.Currency, requestData.Email))
	}

	b.remember(key, res)

	return res
}

func (b *Bank) updateUser(r *http.Request, claims *auth.Claims) ResponseType {
	requestData := users.Update{}

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		return detail(http.StatusBadRequest, "Invalid request body",
			fmt.Sprintf("%s: unable decode json - %v", UpdateErrPrefix, err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.accounts[strings.ToLower(claims.Email)]
	if !ok {
		return detail(http.StatusNotFound, "User not found", "")
	}

	if requestData.Password != "" {
		if bcrypt.CompareHashAndPassword(acc.hash, []byte(requestData.CurrentPassword)) != nil {
			return detail(http.StatusBadRequest, "Current password is incorrect", "")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.MinCost)
		if err != nil {
			return ResponseType{
				LogMsg: fmt.Sprintf("%s: unable hash password - %v", UpdateErrPrefix, err),
				Code:   http.StatusInternalServerError,
			}
		}
		acc.hash = hash
	}

	if requestData.Email != "" && !strings.EqualFold(requestData.Email, acc.user.Email) {
		if _, taken := b.accounts[strings.ToLower(requestData.Email)]; taken {
			return jsonBody(http.StatusBadRequest, map[string][]string{"email": {"Email already registered"}}, "")
		}

		delete(b.accounts, strings.ToLower(acc.user.Email))
		acc.user.Email = requestData.Email
		b.accounts[strings.ToLower(acc.user.Email)] = acc
	}

	if requestData.Username != "" {
		acc.user.Username = requestData.Username
	}
	if requestData.PhoneNumber != "" {
		acc.user.PhoneNumber = requestData.PhoneNumber
	}
	if requestData.LanguagePreference != "" {
		acc.user.LanguagePreference = requestData.LanguagePreference
	}

	return jsonBody(http.StatusOK, acc.user, fmt.Sprintf("updated '%s'", acc.user.Email))
}

func (b *Bank) replay(key string) (ResponseType, bool) {
	if key == "" {
		return ResponseType{}, false
	}

	res, ok := b.processed[key]
	if ok {
		res.LogMsg = fmt.Sprintf("replayed idempotency key '%s'", key)
	}

	return res, ok
}

func (b *Bank) remember(key string, res ResponseType) {
	if key == "" {
		return
	}

	b.processed[key] = res
}
