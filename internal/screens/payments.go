package screens

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"banking-client/internal/errs"
	"banking-client/internal/models/history"
	"banking-client/internal/models/money"
	"banking-client/internal/models/transfers"
	"banking-client/internal/models/users"
	"banking-client/internal/session"
	"banking-client/internal/validate"
)

const (
	TransferErrPrefix = "Error by transfer"
	DepositErrPrefix  = "Error by deposit"

	MsgSelfTransfer = "You cannot transfer money to yourself"
)

// TopUpPresets are the one-tap mobile top-up amounts in major units.
var TopUpPresets = []money.Money{money.FromMajor(10), money.FromMajor(20), money.FromMajor(30)}

// payments journals a money movement, calls the backend with a fresh
// idempotency key and refreshes the cached profile on success only.
type payments struct {
	sess    *session.Session
	backend Backend
	logger  *slog.Logger
}

func (p *payments) currency(ctx context.Context) string {
	if c := p.sess.Profile(ctx).Currency; c != "" {
		return c
	}

	return p.sess.DefaultCurrency()
}

func (p *payments) send(ctx context.Context, current users.Session, kind history.Kind, counterparty string, amount money.Money) (string, error) {
	currency := p.currency(ctx)
	key := uuid.NewString()
	entry := history.NewEntry(kind, counterparty, amount, currency, key)

	journaled := true
	if err := p.sess.Record(ctx, *entry); err != nil {
		journaled = false
		p.warn(TransferErrPrefix, err)
	}

	var (
		receipt transfers.Receipt
		err     error
	)

	if kind == history.KindDeposit {
		receipt, err = p.backend.Deposit(ctx, current.Token, key, transfers.DepositRequest{
			Email:    current.UserEmail,
			Amount:   amount,
			Currency: currency,
		})
	} else {
		receipt, err = p.backend.Transfer(ctx, current.Token, key, transfers.TransferRequest{
			SenderEmail:   current.UserEmail,
			ReceiverEmail: counterparty,
			Amount:        amount,
			Currency:      currency,
		})
	}

	if err != nil {
		if journaled {
			p.resolve(ctx, entry.ID, history.StatusFailed, errs.UserMessage(err))
		}
		return "", p.sess.HandleError(ctx, err)
	}

	if journaled {
		p.resolve(ctx, entry.ID, history.StatusSucceeded, receipt.Message)
	}

	syncProfile(ctx, p.sess, p.backend, current, p.logger)

	return receipt.Message, nil
}

func (p *payments) resolve(ctx context.Context, id string, status history.Status, message string) {
	if err := p.sess.Resolve(ctx, id, status, message); err != nil {
		p.warn(TransferErrPrefix, err)
	}
}

func (p *payments) warn(prefix string, err error) {
	if p.logger != nil {
		p.logger.Warn(fmt.Sprintf("%s - %v", prefix, err))
	}
}

type TransferScreen struct {
	machine
	payments
}

func NewTransferScreen(sess *session.Session, backend Backend, logger *slog.Logger) *TransferScreen {
	return &TransferScreen{
		payments: payments{sess: sess, backend: backend, logger: logger},
	}
}

// Recipients lists every backend user except the current one.
func (s *TransferScreen) Recipients(ctx context.Context) ([]users.User, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return nil, s.finish("", err)
	}

	list, err := s.backend.Users(ctx, current.Token)
	if err != nil {
		return nil, s.finish("", s.sess.HandleError(ctx, err))
	}

	return users.ExcludeEmail(list, current.UserEmail), s.finish("", nil)
}

// Submit sends amount to receiver. Invalid input never reaches the backend.
func (s *TransferScreen) Submit(ctx context.Context, receiver, amount string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	receiver = strings.TrimSpace(receiver)

	form := validate.Form{}
	form.Email("receiver_email", receiver)
	value := form.Amount("amount", amount)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return "", s.finish("", err)
	}

	if strings.EqualFold(receiver, current.UserEmail) {
		return "", s.finish("", errs.NewValidationError("receiver_email", MsgSelfTransfer))
	}

	message, err := s.send(ctx, current, history.KindTransfer, receiver, value)

	return message, s.finish(message, err)
}

type DepositScreen struct {
	machine
	payments
}

func NewDepositScreen(sess *session.Session, backend Backend, logger *slog.Logger) *DepositScreen {
	return &DepositScreen{
		payments: payments{sess: sess, backend: backend, logger: logger},
	}
}

func (s *DepositScreen) Submit(ctx context.Context, amount string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	form := validate.Form{}
	value := form.Amount("amount", amount)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	current, err := s.sess.Require(ctx)
	if err != nil {
		return "", s.finish("", err)
	}

	message, err := s.send(ctx, current, history.KindDeposit, current.UserEmail, value)

	return message, s.finish(message, err)
}

// BillScreen pays bills and mobile top-ups as transfers to the biller account.
type BillScreen struct {
	machine
	payments
	billerEmail string
}

func NewBillScreen(sess *session.Session, backend Backend, billerEmail string, logger *slog.Logger) *BillScreen {
	return &BillScreen{
		payments:    payments{sess: sess, backend: backend, logger: logger},
		billerEmail: billerEmail,
	}
}

func (s *BillScreen) PayBill(ctx context.Context, billCode, amount string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	form := validate.Form{}
	form.Required("bill_code", billCode)
	value := form.Amount("amount", amount)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	return s.pay(ctx, value)
}

// TopUp credits a mobile number. Amount may be one of TopUpPresets or any
// other positive amount.
func (s *BillScreen) TopUp(ctx context.Context, phone, amount string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}

	form := validate.Form{}
	form.Phone("phone_number", phone)
	value := form.Amount("amount", amount)
	if err := form.Err(); err != nil {
		return "", s.finish("", err)
	}

	return s.pay(ctx, value)
}

func (s *BillScreen) pay(ctx context.Context, value money.Money) (string, error) {
	current, err := s.sess.Require(ctx)
	if err != nil {
		return "", s.finish("", err)
	}

	message, err := s.send(ctx, current, history.KindBill, s.billerEmail, value)

	return message, s.finish(message, err)
}

type HistoryScreen struct {
	machine
	sess *session.Session
}

func NewHistoryScreen(sess *session.Session) *HistoryScreen {
	return &HistoryScreen{sess: sess}
}

func (s *HistoryScreen) List(ctx context.Context, kind history.Kind) ([]history.Entry, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	list, err := s.sess.History(ctx, kind)

	return list, s.finish("", err)
}
