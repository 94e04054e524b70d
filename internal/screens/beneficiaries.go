package screens

import (
	"context"
	"fmt"
	"strings"

	"banking-client/internal/errs"
	"banking-client/internal/models/beneficiaries"
	"banking-client/internal/session"
	"banking-client/internal/validate"
)

const (
	MsgRecipientRequired = "Enter an email or a card number"
	MsgRecipientBoth     = "Enter either an email or a card number, not both"
	MsgBeneficiaryExists = "Beneficiary already exists"
)

type BeneficiaryForm struct {
	Name       string
	Email      string
	CardNumber string
	Bank       string
	Branch     string
}

type BeneficiaryScreen struct {
	machine
	sess *session.Session
}

func NewBeneficiaryScreen(sess *session.Session) *BeneficiaryScreen {
	return &BeneficiaryScreen{sess: sess}
}

func (s *BeneficiaryScreen) List(ctx context.Context) (beneficiaries.List, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	list, err := s.sess.Beneficiaries(ctx)

	return list, s.finish("", err)
}

func (s *BeneficiaryScreen) Add(ctx context.Context, data BeneficiaryForm) (beneficiaries.Beneficiary, error) {
	if err := s.begin(); err != nil {
		return beneficiaries.Beneficiary{}, err
	}

	hasEmail := validate.Required(data.Email)
	hasCard := validate.Required(data.CardNumber)

	form := validate.Form{}
	form.Required("name", data.Name)
	switch {
	case hasEmail && hasCard:
		form.Fail("recipient", MsgRecipientBoth)
	case hasEmail:
		form.Email("email", data.Email)
	case hasCard:
		form.CardNumber("card_number", data.CardNumber)
	default:
		form.Fail("recipient", MsgRecipientRequired)
	}
	if err := form.Err(); err != nil {
		return beneficiaries.Beneficiary{}, s.finish("", err)
	}

	list, err := s.sess.Beneficiaries(ctx)
	if err != nil {
		return beneficiaries.Beneficiary{}, s.finish("", err)
	}

	if list.HasRecipient(strings.TrimSpace(data.Email), data.CardNumber) {
		return beneficiaries.Beneficiary{}, s.finish("", errs.NewValidationError("recipient", MsgBeneficiaryExists))
	}

	b := beneficiaries.NewBeneficiary(data.Name, data.Email, data.CardNumber, data.Bank, data.Branch)

	if err := s.sess.SaveBeneficiaries(ctx, append(list, *b)); err != nil {
		return beneficiaries.Beneficiary{}, s.finish("", err)
	}

	return *b, s.finish(fmt.Sprintf("%s added to beneficiaries", b.Name), nil)
}

func (s *BeneficiaryScreen) Remove(ctx context.Context, id string) error {
	if err := s.begin(); err != nil {
		return err
	}

	list, err := s.sess.Beneficiaries(ctx)
	if err != nil {
		return s.finish("", err)
	}

	rest, removed := list.Without(id)
	if !removed {
		return s.finish("", fmt.Errorf("beneficiary '%s' - %w", id, errs.ErrNotFound))
	}

	if err := s.sess.SaveBeneficiaries(ctx, rest); err != nil {
		return s.finish("", err)
	}

	return s.finish("Beneficiary removed", nil)
}
