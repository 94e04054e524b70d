package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"banking-client/internal/fakebank"
	"banking-client/internal/models/history"
	"banking-client/internal/models/money"
	"banking-client/internal/observer"
	"banking-client/internal/screens"
	"banking-client/internal/services/places"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// dispatch runs one of the nested commands, e.g. `profile show`.
func dispatch(ctx context.Context, group string, args []string, cmds map[string]command) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs one of: %s", errUnknownCommand, group, strings.Join(commandNames(cmds), ", "))
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w %s %q, expected one of: %s", errUnknownCommand, group, args[0], strings.Join(commandNames(cmds), ", "))
	}

	return cmd(ctx, args[1:])
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	screen := screens.NewLoginScreen(a.sess, a.backend, a.logger)
	if _, err := screen.Submit(ctx, *email, *password); err != nil {
		return err
	}

	a.println(screen.State().Message)

	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	form := screens.SignupForm{}
	fs.StringVar(&form.Username, "username", "", "display name")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	screen := screens.NewSignupScreen(a.sess, a.backend, a.logger)
	if _, err := screen.Submit(ctx, form); err != nil {
		return err
	}

	a.println(screen.State().Message)

	return nil
}

func (a *app) forgot(ctx context.Context, args []string) error {
	fs := newFlagSet("forgot")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := screens.NewLoginScreen(a.sess, a.backend, a.logger).ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}

	a.println(message)

	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := screens.NewProfileScreen(a.sess, a.backend, a.logger).Logout(ctx); err != nil {
		return err
	}

	a.println("Logged out")

	return nil
}

func (a *app) balance(ctx context.Context, _ []string) error {
	user, err := screens.NewHomeScreen(a.sess, a.backend).Refresh(ctx)
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("%s: %s %s", user.Username, user.Balance, user.Currency))

	return nil
}

func (a *app) users(ctx context.Context, _ []string) error {
	list, err := screens.NewTransferScreen(a.sess, a.backend, a.logger).Recipients(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(list)
}

func (a *app) transfer(ctx context.Context, args []string) error {
	fs := newFlagSet("transfer")
	to := fs.String("to", "", "receiver email")
	amount := fs.String("amount", "", "amount in major units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := screens.NewTransferScreen(a.sess, a.backend, a.logger).Submit(ctx, *to, *amount)
	if err != nil {
		return err
	}

	a.println(message)

	return nil
}

func (a *app) deposit(ctx context.Context, args []string) error {
	fs := newFlagSet("deposit")
	amount := fs.String("amount", "", "amount in major units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := screens.NewDepositScreen(a.sess, a.backend, a.logger).Submit(ctx, *amount)
	if err != nil {
		return err
	}

	a.println(message)

	return nil
}

func (a *app) bill(ctx context.Context, args []string) error {
	fs := newFlagSet("bill")
	code := fs.String("code", "", "bill reference")
	amount := fs.String("amount", "", "amount in major units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := screens.NewBillScreen(a.sess, a.backend, a.params.BillerEmail, a.logger).PayBill(ctx, *code, *amount)
	if err != nil {
		return err
	}

	a.println(message)

	return nil
}

func (a *app) topUp(ctx context.Context, args []string) error {
	fs := newFlagSet("topup")
	phone := fs.String("phone", "", "phone number to top up")
	amount := fs.String("amount", screens.TopUpPresets[0].String(), "amount in major units")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message, err := screens.NewBillScreen(a.sess, a.backend, a.params.BillerEmail, a.logger).TopUp(ctx, *phone, *amount)
	if err != nil {
		return err
	}

	a.println(message)

	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := newFlagSet("history")
	kindName := fs.String("kind", "", "transfer, deposit or bill")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var kind history.Kind
	if *kindName != "" {
		k, ok := history.ParseKind(*kindName)
		if !ok {
			return fmt.Errorf("unknown history kind %q", *kindName)
		}
		kind = k
	}

	list, err := screens.NewHistoryScreen(a.sess).List(ctx, kind)
	if err != nil {
		return err
	}

	return a.printJSON(list)
}

func (a *app) beneficiary(ctx context.Context, args []string) error {
	screen := screens.NewBeneficiaryScreen(a.sess)

	return dispatch(ctx, "beneficiary", args, map[string]command{
		"list": func(ctx context.Context, _ []string) error {
			list, err := screen.List(ctx)
			if err != nil {
				return err
			}

			for _, b := range list {
				recipient := b.Email
				if recipient == "" {
					recipient = b.MaskedCard()
				}
				a.println(fmt.Sprintf("%s\t%s\t%s\t%s", b.ID, b.Name, recipient, b.Bank))
			}

			return nil
		},
		"add": func(ctx context.Context, args []string) error {
			fs := newFlagSet("beneficiary add")
			form := screens.BeneficiaryForm{}
			fs.StringVar(&form.Name, "name", "", "beneficiary name")
			fs.StringVar(&form.Email, "email", "", "beneficiary account email")
			fs.StringVar(&form.CardNumber, "card", "", "beneficiary card number")
			fs.StringVar(&form.Bank, "bank", "", "bank name")
			fs.StringVar(&form.Branch, "branch", "", "bank branch")
			if err := fs.Parse(args); err != nil {
				return err
			}

			b, err := screen.Add(ctx, form)
			if err != nil {
				return err
			}

			a.println(b.ID)

			return nil
		},
		"remove": func(ctx context.Context, args []string) error {
			fs := newFlagSet("beneficiary remove")
			id := fs.String("id", "", "beneficiary id")
			if err := fs.Parse(args); err != nil {
				return err
			}

			return screen.Remove(ctx, *id)
		},
	})
}

func (a *app) exchange(ctx context.Context, args []string) error {
	fs := newFlagSet("exchange")
	base := fs.String("base", a.params.DefaultCurrency, "base currency for rates")
	if err := fs.Parse(args); err != nil {
		return err
	}

	screen := screens.NewExchangeScreen(a.exchanger, *base)

	return dispatch(ctx, "exchange", fs.Args(), map[string]command{
		"codes": func(ctx context.Context, _ []string) error {
			codes, err := screen.Codes(ctx)
			if err != nil {
				return err
			}

			for _, c := range codes {
				a.println(fmt.Sprintf("%s\t%s", c.Code, c.Name))
			}

			return nil
		},
		"convert": func(ctx context.Context, args []string) error {
			fs := newFlagSet("exchange convert")
			from := fs.String("from", "", "source currency")
			to := fs.String("to", "", "target currency")
			amount := fs.String("amount", "", "amount to convert")
			if err := fs.Parse(args); err != nil {
				return err
			}

			converted, err := screen.Convert(ctx, *from, *to, *amount)
			if err != nil {
				return err
			}

			a.println(fmt.Sprintf("%s %s = %s %s", *amount, strings.ToUpper(*from), converted, strings.ToUpper(*to)))

			return nil
		},
		"rates": func(ctx context.Context, _ []string) error {
			rates, err := screen.Rates(ctx)
			if err != nil {
				return err
			}

			return a.printJSON(rates)
		},
	})
}

func (a *app) branches(ctx context.Context, args []string) error {
	fs := newFlagSet("branches")
	lat := fs.String("lat", "", "latitude")
	lng := fs.String("lng", "", "longitude")
	query := fs.String("query", "", "bank name to search for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loc, err := parseLocation(*lat, *lng)
	if err != nil {
		return err
	}

	screen := screens.NewBranchScreen(a.finder)

	list, err := screen.Search(ctx, loc, *query)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		a.println(screen.State().Message)
		return nil
	}

	return a.printJSON(list)
}

// parseLocation returns nil when no coordinates were given.
func parseLocation(lat, lng string) (*places.Location, error) {
	if lat == "" && lng == "" {
		return nil, nil
	}

	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", lat)
	}

	lngValue, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", lng)
	}

	return &places.Location{Lat: latValue, Lng: lngValue}, nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	screen := screens.NewProfileScreen(a.sess, a.backend, a.logger)

	return dispatch(ctx, "profile", args, map[string]command{
		"show": func(ctx context.Context, _ []string) error {
			return a.printJSON(screen.Show(ctx))
		},
		"update": func(ctx context.Context, args []string) error {
			current := screen.Show(ctx)

			fs := newFlagSet("profile update")
			form := screens.ProfileForm{}
			fs.StringVar(&form.Username, "username", current.Username, "display name")
			fs.StringVar(&form.Email, "email", current.Email, "account email")
			fs.StringVar(&form.PhoneNumber, "phone", current.PhoneNumber, "phone number")
			fs.StringVar(&form.LanguagePreference, "lang", current.LanguagePreference, "language preference")
			if err := fs.Parse(args); err != nil {
				return err
			}

			user, err := screen.Update(ctx, form)
			if err != nil {
				return err
			}

			return a.printJSON(user)
		},
		"password": func(ctx context.Context, args []string) error {
			fs := newFlagSet("profile password")
			current := fs.String("current", "", "current password")
			next := fs.String("new", "", "new password")
			confirm := fs.String("confirm", "", "new password confirmation")
			if err := fs.Parse(args); err != nil {
				return err
			}

			if err := screen.ChangePassword(ctx, *current, *next, *confirm); err != nil {
				return err
			}

			a.println(screen.State().Message)

			return nil
		},
		"faceid": func(ctx context.Context, args []string) error {
			fs := newFlagSet("profile faceid")
			enable := fs.Bool("enable", !screen.FaceID(ctx), "enable biometric unlock")
			if err := fs.Parse(args); err != nil {
				return err
			}

			if err := screen.SetFaceID(ctx, *enable); err != nil {
				return err
			}

			a.println(fmt.Sprintf("Face ID enabled: %t", screen.FaceID(ctx)))

			return nil
		},
	})
}

// watch prints the balance every refresh interval until interrupted or
// until the session ends.
func (a *app) watch(ctx context.Context, args []string) error {
	fs := newFlagSet("watch")
	interval := fs.Duration("i", a.params.RefreshInterval, "refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", *interval)
	}

	if _, err := a.sess.Require(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.observer = observer.NewObserver(screens.NewHomeScreen(a.sess, a.backend), *interval, a.logger)
	a.observer.Start(ctx)

	go a.catchTerminateSignal(ctx, cancel)

	for user := range a.observer.Updates() {
		a.println(fmt.Sprintf("%s %s %s", time.Now().Format(time.TimeOnly), user.Balance, user.Currency))
	}

	return nil
}

// serveFakebank runs the in-memory backend for local demos.
func (a *app) serveFakebank(ctx context.Context, args []string) error {
	fs := newFlagSet("fakebank")
	addr := fs.String("a", "localhost:8000", "listen address")
	secret := fs.String("secret", fakebank.DefaultSecret, "JWT signing secret")
	seed := fs.String("seed", "", "accounts to create: email:username:password:balance[,...]")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bank := fakebank.New(*secret, a.params.DefaultCurrency, a.logger)
	if err := seedAccounts(bank, *seed); err != nil {
		return err
	}

	a.server = &http.Server{
		Addr:    *addr,
		Handler: bank.Router(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.catchTerminateSignal(ctx, func() {
		if err := a.shutdownServer(); err != nil {
			a.logger.Error(err.Error())
		}
	})

	a.logger.Info("Running fake bank", "addr", *addr)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func seedAccounts(bank *fakebank.Bank, seed string) error {
	if strings.TrimSpace(seed) == "" {
		return nil
	}

	for _, item := range strings.Split(seed, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 4 {
			return fmt.Errorf("invalid seed %q, want email:username:password:balance", item)
		}

		balance, err := money.Parse(parts[3])
		if err != nil {
			return fmt.Errorf("invalid seed balance %q - %w", parts[3], err)
		}

		if err := bank.Seed(parts[0], parts[1], parts[2], balance); err != nil {
			return fmt.Errorf("error by seed %s - %w", parts[0], err)
		}
	}

	return nil
}
