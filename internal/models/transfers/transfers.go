package transfers

import (
	"banking-client/internal/models/money"
)

type TransferRequest struct {
	SenderEmail   string      `json:"sender_email"`
	ReceiverEmail string      `json:"receiver_email"`
	Amount        money.Money `json:"amount"`
	Currency      string      `json:"currency"`
}

type DepositRequest struct {
	Email    string      `json:"email"`
	Amount   money.Money `json:"amount"`
	Currency string      `json:"currency"`
}

// Receipt is the success body of /transfer and /deposit.
type Receipt struct {
	Message string `json:"message"`
}
