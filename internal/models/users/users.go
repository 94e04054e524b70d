package users

import (
	"encoding/json"
	"strings"
	"time"

	"banking-client/internal/models/money"
)

const GuestUsername = "Guest User"

type User struct {
	ID                 int         `json:"id,omitempty"`
	Username           string      `json:"username"`
	Email              string      `json:"email"`
	PhoneNumber        string      `json:"phone_number,omitempty"`
	Balance            money.Money `json:"balance"`
	Currency           string      `json:"currency,omitempty"`
	LanguagePreference string      `json:"languagePreference,omitempty"`
	CreatedAt          Timestamp   `json:"created_at,omitempty"`
}

// Guest is the profile shown when nothing is cached locally.
func Guest(currency string) User {
	return User{
		Username: GuestUsername,
		Email:    "",
		Balance:  0,
		Currency: currency,
	}
}

func (u User) IsGuest() bool {
	return u.Email == "" && u.Username == GuestUsername
}

// Session is the persisted authentication state of this client.
type Session struct {
	Token     string `json:"access_token"`
	UserEmail string `json:"email"`
	Username  string `json:"username,omitempty"`
}

func (s Session) Valid() bool {
	return s.Token != "" && s.UserEmail != ""
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

// Update carries the fields sent with PUT /users. Empty fields are omitted.
type Update struct {
	Email              string `json:"email"`
	Username           string `json:"username,omitempty"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	Password           string `json:"password,omitempty"`
	CurrentPassword    string `json:"current_password,omitempty"`
	LanguagePreference string `json:"languagePreference,omitempty"`
}

// ExcludeEmail drops the user with the given email, used for beneficiary pickers.
func ExcludeEmail(list []User, email string) []User {
	result := make([]User, 0, len(list))

	for _, u := range list {
		if u.Email == email {
			continue
		}
		result = append(result, u)
	}

	return result
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO form some backends
// emit for naive datetimes.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(ts.Format(time.RFC3339))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		ts.Time = time.Time{}
		return nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			ts.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}

	return lastErr
}
