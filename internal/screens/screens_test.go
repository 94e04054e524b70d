package screens_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"banking-client/internal/errs"
	"banking-client/internal/logging"
	"banking-client/internal/models/users"
	"banking-client/internal/screens"
	"banking-client/internal/screens/mocks"
	"banking-client/internal/services/exchange"
	"banking-client/internal/services/places"
)

func TestBeneficiaryScreen(t *testing.T) {
	ctx := context.Background()
	screen := screens.NewBeneficiaryScreen(loggedIn(t))

	tests := []struct {
		name       string
		form       screens.BeneficiaryForm
		wantFields []string
	}{
		{
			name: "1 by email",
			form: screens.BeneficiaryForm{Name: "Bob", Email: "bob@bank.io", Bank: "Afriland"},
		},
		{
			name: "2 by card",
			form: screens.BeneficiaryForm{Name: "Cid", CardNumber: "4539 1488 0343 6467"},
		},
		{
			name:       "3 duplicate email",
			form:       screens.BeneficiaryForm{Name: "Bobby", Email: "BOB@bank.io"},
			wantFields: []string{"recipient"},
		},
		{
			name:       "4 bad card",
			form:       screens.BeneficiaryForm{Name: "Dan", CardNumber: "4539148803436468"},
			wantFields: []string{"card_number"},
		},
		{
			name:       "5 nothing",
			form:       screens.BeneficiaryForm{},
			wantFields: []string{"name", "recipient"},
		},
		{
			name:       "6 both",
			form:       screens.BeneficiaryForm{Name: "Eve", Email: "eve@bank.io", CardNumber: "4539148803436467"},
			wantFields: []string{"recipient"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := screen.Add(ctx, tt.form)
			if len(tt.wantFields) > 0 {
				var valErr *errs.ValidationError
				require.ErrorAs(t, err, &valErr)
				for _, f := range tt.wantFields {
					require.Contains(t, valErr.Fields, f)
				}
				return
			}

			require.NoError(t, err)
		})
	}

	list, err := screen.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "4539148803436467", list[1].CardNumber)
	require.Equal(t, "************6467", list[1].MaskedCard())

	require.NoError(t, screen.Remove(ctx, list[0].ID))
	require.ErrorIs(t, screen.Remove(ctx, list[0].ID), errs.ErrNotFound)

	list, err = screen.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestExchangeScreen_Convert(t *testing.T) {
	type args struct {
		from   string
		to     string
		amount string
	}
	tests := []struct {
		name             string
		prepareExchanger func(*mocks.MockExchanger)
		args             args
		want             string
		wantErr          bool
	}{
		{
			name: "1 positive",
			prepareExchanger: func(me *mocks.MockExchanger) {
				me.EXPECT().
					Convert(gomock.Any(), "USD", "EUR", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, amount decimal.Decimal) (string, error) {
						if !amount.Equal(decimal.NewFromInt(10)) {
							return "", errors.New("unexpected amount " + amount.String())
						}
						return "12.35", nil
					})
			},
			args: args{from: "usd", to: " EUR", amount: "10"},
			want: "12.35",
		},
		{
			name:             "2 non positive amount makes no call",
			prepareExchanger: func(me *mocks.MockExchanger) {},
			args:             args{from: "USD", to: "EUR", amount: "0"},
			wantErr:          true,
		},
		{
			name:             "3 same currency makes no call",
			prepareExchanger: func(me *mocks.MockExchanger) {},
			args:             args{from: "XAF", to: "xaf", amount: "10"},
			wantErr:          true,
		},
		{
			name: "4 api error surfaced",
			prepareExchanger: func(me *mocks.MockExchanger) {
				me.EXPECT().
					Convert(gomock.Any(), "USD", "ZZZ", gomock.Any()).
					Return("", &errs.BusinessError{Message: "unsupported-code"})
			},
			args:    args{from: "USD", to: "ZZZ", amount: "1"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExchanger := mocks.NewMockExchanger(ctrl)
			tt.prepareExchanger(mockExchanger)

			screen := screens.NewExchangeScreen(mockExchanger, "XAF")
			got, err := screen.Convert(context.Background(), tt.args.from, tt.args.to, tt.args.amount)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, screens.StatusError, screen.State().Status)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExchangeScreen_Rates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := []exchange.Rate{{Country: "USA", Currency: "USD", Buy: "0.002", Sell: "0.002"}}

	mockExchanger := mocks.NewMockExchanger(ctrl)
	mockExchanger.EXPECT().
		RatesTable(gomock.Any(), "XAF", exchange.Countries).
		Return(rows)

	got, err := screens.NewExchangeScreen(mockExchanger, "XAF").Rates(context.Background())
	require.NoError(t, err)
	require.Equal(t, rows, got)
}

func TestBranchScreen_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := &places.Location{Lat: 3.86, Lng: 11.52}

	mockFinder := mocks.NewMockBranchFinder(ctrl)
	gomock.InOrder(
		mockFinder.EXPECT().NearbyBanks(gomock.Any(), loc, "").Return([]places.Branch{{ID: "p1", Name: "Afriland"}}, nil),
		mockFinder.EXPECT().NearbyBanks(gomock.Any(), loc, "zzz").Return([]places.Branch{}, nil),
		mockFinder.EXPECT().NearbyBanks(gomock.Any(), (*places.Location)(nil), "").Return(nil, errs.ErrLocationRequired),
	)

	screen := screens.NewBranchScreen(mockFinder)
	ctx := context.Background()

	got, err := screen.Search(ctx, loc, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Empty(t, screen.State().Message)

	got, err = screen.Search(ctx, loc, "zzz")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, screens.StatusSuccess, screen.State().Status)
	require.NotEmpty(t, screen.State().Message)

	_, err = screen.Search(ctx, nil, "")
	require.ErrorIs(t, err, errs.ErrLocationRequired)
	require.Equal(t, screens.StatusError, screen.State().Status)
}

func TestProfileScreen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := loggedIn(t)
	mockBackend := mocks.NewMockBackend(ctrl)

	mockBackend.EXPECT().
		UpdateUser(gomock.Any(), testToken, users.Update{Email: "ann.new@bank.io", Username: "annie"}).
		Return(users.User{Username: "annie", Email: "ann.new@bank.io", Currency: "XAF"}, nil)
	mockBackend.EXPECT().
		UpdateUser(gomock.Any(), testToken, users.Update{
			Email:           "ann.new@bank.io",
			Password:        "NewSecret1",
			CurrentPassword: "Secret123",
		}).
		Return(users.User{}, nil)

	screen := screens.NewProfileScreen(sess, mockBackend, logging.Discard())

	user, err := screen.Update(ctx, screens.ProfileForm{Username: "annie", Email: "ann.new@bank.io"})
	require.NoError(t, err)
	require.Equal(t, "annie", user.Username)

	loaded, ok, err := sess.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ann.new@bank.io", loaded.UserEmail)
	require.Equal(t, "annie", screen.Show(ctx).Username)

	err = screen.ChangePassword(ctx, "Secret123", "weak", "weak")
	require.Error(t, err)
	require.Contains(t, screen.State().Fields, "new_password")

	require.NoError(t, screen.ChangePassword(ctx, "Secret123", "NewSecret1", "NewSecret1"))
	require.Equal(t, "Password changed successfully", screen.State().Message)

	require.False(t, screen.FaceID(ctx))
	require.NoError(t, screen.SetFaceID(ctx, true))
	require.True(t, screen.FaceID(ctx))

	require.NoError(t, screen.Logout(ctx))
	require.True(t, screen.Show(ctx).IsGuest())
	require.True(t, screen.FaceID(ctx))

	err = screen.ChangePassword(ctx, "Secret123", "NewSecret1", "NewSecret1")
	require.ErrorIs(t, err, errs.ErrNoSession)
}
