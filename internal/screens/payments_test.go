package screens_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"banking-client/internal/errs"
	"banking-client/internal/logging"
	"banking-client/internal/models/history"
	"banking-client/internal/models/money"
	"banking-client/internal/models/transfers"
	"banking-client/internal/models/users"
	"banking-client/internal/screens"
	"banking-client/internal/screens/mocks"
	"banking-client/internal/session"
	"banking-client/internal/store/memory"
)

const testToken = "tok"

func loggedIn(t *testing.T) *session.Session {
	t.Helper()

	ctx := context.Background()
	sess := session.New(memory.NewStore(), "XAF", logging.Discard())

	require.NoError(t, sess.CacheUser(ctx, users.User{
		Username: "ann",
		Email:    "ann@bank.io",
		Balance:  money.FromMajor(500),
		Currency: "XAF",
	}))
	require.NoError(t, sess.Save(ctx, users.Session{Token: testToken, UserEmail: "ann@bank.io", Username: "ann"}))

	return sess
}

func TestTransferScreen_Submit(t *testing.T) {
	type fields struct {
		prepareBackend func(*mocks.MockBackend)
	}
	type args struct {
		receiver string
		amount   string
	}
	tests := []struct {
		name        string
		fields      fields
		args        args
		wantMessage string
		wantFields  []string
		wantErr     string
		wantBalance money.Money
		wantHistory history.Status
	}{
		{
			name: "1 positive",
			fields: fields{
				prepareBackend: func(mb *mocks.MockBackend) {
					mb.EXPECT().
						Transfer(gomock.Any(), testToken, gomock.Any(), transfers.TransferRequest{
							SenderEmail:   "ann@bank.io",
							ReceiverEmail: "bob@bank.io",
							Amount:        money.FromMajor(100),
							Currency:      "XAF",
						}).
						Return(transfers.Receipt{Message: "Transfer successful"}, nil)
					mb.EXPECT().
						Balance(gomock.Any(), testToken, "ann@bank.io").
						Return(users.User{Username: "ann", Email: "ann@bank.io", Balance: money.FromMajor(400), Currency: "XAF"}, nil)
				},
			},
			args:        args{receiver: "bob@bank.io", amount: "100"},
			wantMessage: "Transfer successful",
			wantBalance: money.FromMajor(400),
			wantHistory: history.StatusSucceeded,
		},
		{
			name:        "2 zero amount makes no call",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "bob@bank.io", amount: "0"},
			wantFields:  []string{"amount"},
			wantBalance: money.FromMajor(500),
		},
		{
			name:        "3 negative amount makes no call",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "bob@bank.io", amount: "-5"},
			wantFields:  []string{"amount"},
			wantBalance: money.FromMajor(500),
		},
		{
			name:        "4 bad receiver and amount",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "bob", amount: "abc"},
			wantFields:  []string{"receiver_email", "amount"},
			wantBalance: money.FromMajor(500),
		},
		{
			name:        "5 self transfer",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "ANN@bank.io", amount: "10"},
			wantFields:  []string{"receiver_email"},
			wantBalance: money.FromMajor(500),
		},
		{
			name: "6 insufficient funds keeps cached balance",
			fields: fields{
				prepareBackend: func(mb *mocks.MockBackend) {
					mb.EXPECT().
						Transfer(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
						Return(transfers.Receipt{}, &errs.BusinessError{Status: 400, Message: "Insufficient funds"})
				},
			},
			args:        args{receiver: "bob@bank.io", amount: "100"},
			wantErr:     "Insufficient funds",
			wantBalance: money.FromMajor(500),
			wantHistory: history.StatusFailed,
		},
		{
			name:        "7 amount past int64 cents makes no call",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "bob@bank.io", amount: "184467440737095516.17"},
			wantFields:  []string{"amount"},
			wantBalance: money.FromMajor(500),
		},
		{
			name:        "8 decimal comma makes no call",
			fields:      fields{prepareBackend: func(mb *mocks.MockBackend) {}},
			args:        args{receiver: "bob@bank.io", amount: "1,5"},
			wantFields:  []string{"amount"},
			wantBalance: money.FromMajor(500),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			sess := loggedIn(t)
			mockBackend := mocks.NewMockBackend(ctrl)
			tt.fields.prepareBackend(mockBackend)

			screen := screens.NewTransferScreen(sess, mockBackend, logging.Discard())
			message, err := screen.Submit(ctx, tt.args.receiver, tt.args.amount)

			require.Equal(t, tt.wantBalance, sess.Profile(ctx).Balance)

			entries, listErr := sess.History(ctx, history.KindTransfer)
			require.NoError(t, listErr)

			switch {
			case len(tt.wantFields) > 0:
				var valErr *errs.ValidationError
				require.ErrorAs(t, err, &valErr)
				for _, f := range tt.wantFields {
					require.Contains(t, valErr.Fields, f)
				}
				require.Equal(t, screens.StatusError, screen.State().Status)
				require.Empty(t, entries)
			case tt.wantErr != "":
				require.Error(t, err)
				require.Equal(t, tt.wantErr, errs.UserMessage(err))
				require.Equal(t, screens.State{Status: screens.StatusError, Message: tt.wantErr}, screen.State())
				require.Len(t, entries, 1)
				require.Equal(t, tt.wantHistory, entries[0].Status)
				require.Equal(t, tt.wantErr, entries[0].Message)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.wantMessage, message)
				require.Equal(t, screens.State{Status: screens.StatusSuccess, Message: tt.wantMessage}, screen.State())
				require.Len(t, entries, 1)
				require.Equal(t, tt.wantHistory, entries[0].Status)
				require.NotEmpty(t, entries[0].IdempotencyKey)
			}
		})
	}
}

func TestTransferScreen_AuthErrorClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := loggedIn(t)
	mockBackend := mocks.NewMockBackend(ctrl)
	mockBackend.EXPECT().
		Transfer(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		Return(transfers.Receipt{}, &errs.AuthError{Message: "Could not validate credentials"})

	screen := screens.NewTransferScreen(sess, mockBackend, logging.Discard())
	_, err := screen.Submit(ctx, "bob@bank.io", "10")
	require.True(t, errs.IsAuth(err))

	_, ok, err := sess.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, sess.Profile(ctx).IsGuest())
}

func TestTransferScreen_ForbiddenKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := loggedIn(t)
	mockBackend := mocks.NewMockBackend(ctrl)
	mockBackend.EXPECT().
		Transfer(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		Return(transfers.Receipt{}, &errs.BusinessError{Status: 403, Message: "Not authorized to transfer from this account"})

	screen := screens.NewTransferScreen(sess, mockBackend, logging.Discard())
	_, err := screen.Submit(ctx, "bob@bank.io", "10")
	require.Error(t, err)
	require.False(t, errs.IsAuth(err))

	current, ok, err := sess.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testToken, current.Token)
}

func TestTransferScreen_SubmitInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := loggedIn(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	mockBackend := mocks.NewMockBackend(ctrl)
	mockBackend.EXPECT().
		Transfer(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, transfers.TransferRequest) (transfers.Receipt, error) {
			close(entered)
			<-release
			return transfers.Receipt{Message: "Transfer successful"}, nil
		})
	mockBackend.EXPECT().
		Balance(gomock.Any(), testToken, "ann@bank.io").
		Return(users.User{Username: "ann", Email: "ann@bank.io", Balance: money.FromMajor(490), Currency: "XAF"}, nil)

	screen := screens.NewTransferScreen(sess, mockBackend, logging.Discard())

	done := make(chan error, 1)
	go func() {
		_, err := screen.Submit(ctx, "bob@bank.io", "10")
		done <- err
	}()

	<-entered
	require.Equal(t, screens.StatusLoading, screen.State().Status)

	_, err := screen.Submit(ctx, "bob@bank.io", "10")
	require.ErrorIs(t, err, errs.ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, screens.StatusSuccess, screen.State().Status)
}

func TestTransferScreen_Recipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBackend := mocks.NewMockBackend(ctrl)
	mockBackend.EXPECT().
		Users(gomock.Any(), testToken).
		Return([]users.User{{Username: "ann", Email: "ann@bank.io"}, {Username: "bob", Email: "bob@bank.io"}}, nil)

	screen := screens.NewTransferScreen(loggedIn(t), mockBackend, logging.Discard())

	list, err := screen.Recipients(context.Background())
	require.NoError(t, err)
	require.Equal(t, []users.User{{Username: "bob", Email: "bob@bank.io"}}, list)
}

func TestDepositScreen_Submit(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		prepareBackend func(*mocks.MockBackend)
		wantErr        bool
	}{
		{
			name:   "1 positive",
			amount: "25.50",
			prepareBackend: func(mb *mocks.MockBackend) {
				mb.EXPECT().
					Deposit(gomock.Any(), testToken, gomock.Any(), transfers.DepositRequest{
						Email:    "ann@bank.io",
						Amount:   money.Money(2550),
						Currency: "XAF",
					}).
					Return(transfers.Receipt{Message: "Deposit successful"}, nil)
				mb.EXPECT().
					Balance(gomock.Any(), testToken, "ann@bank.io").
					Return(users.User{Email: "ann@bank.io", Balance: money.Money(52550)}, nil)
			},
		},
		{
			name:           "2 zero makes no call",
			amount:         "0",
			prepareBackend: func(mb *mocks.MockBackend) {},
			wantErr:        true,
		},
		{
			name:           "3 three decimals makes no call",
			amount:         "1.005",
			prepareBackend: func(mb *mocks.MockBackend) {},
			wantErr:        true,
		},
		{
			name:           "4 huge amount makes no call",
			amount:         "100000000000000000000",
			prepareBackend: func(mb *mocks.MockBackend) {},
			wantErr:        true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			sess := loggedIn(t)
			mockBackend := mocks.NewMockBackend(ctrl)
			tt.prepareBackend(mockBackend)

			screen := screens.NewDepositScreen(sess, mockBackend, logging.Discard())
			message, err := screen.Submit(ctx, tt.amount)
			if tt.wantErr {
				var valErr *errs.ValidationError
				require.ErrorAs(t, err, &valErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "Deposit successful", message)
			require.Equal(t, money.Money(52550), sess.Profile(ctx).Balance)

			entries, err := sess.History(ctx, history.KindDeposit)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			require.Equal(t, "ann@bank.io", entries[0].Counterparty)
		})
	}
}

func TestBillScreen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := loggedIn(t)
	mockBackend := mocks.NewMockBackend(ctrl)

	mockBackend.EXPECT().
		Transfer(gomock.Any(), testToken, gomock.Any(), transfers.TransferRequest{
			SenderEmail:   "ann@bank.io",
			ReceiverEmail: "billing@bank.local",
			Amount:        money.FromMajor(20),
			Currency:      "XAF",
		}).
		Return(transfers.Receipt{Message: "Transfer successful"}, nil).
		Times(2)
	mockBackend.EXPECT().
		Balance(gomock.Any(), testToken, "ann@bank.io").
		Return(users.User{Email: "ann@bank.io", Balance: money.FromMajor(480)}, nil).
		Times(2)

	screen := screens.NewBillScreen(sess, mockBackend, "billing@bank.local", logging.Discard())

	_, err := screen.PayBill(ctx, "", "20")
	var valErr *errs.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Contains(t, valErr.Fields, "bill_code")

	_, err = screen.PayBill(ctx, "ENEO-42", "20")
	require.NoError(t, err)

	_, err = screen.TopUp(ctx, "12", screens.TopUpPresets[1].String())
	require.ErrorAs(t, err, &valErr)
	require.Contains(t, valErr.Fields, "phone_number")

	_, err = screen.TopUp(ctx, "+237 670 000 000", screens.TopUpPresets[1].String())
	require.NoError(t, err)

	entries, err := screens.NewHistoryScreen(sess).List(ctx, history.KindBill)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotEqual(t, entries[0].IdempotencyKey, entries[1].IdempotencyKey)
}
