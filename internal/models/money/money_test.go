package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoney_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Money
		want []byte
	}{
		{
			name: "1 positive",
			v:    15000,
			want: []byte("150"),
		},
		{
			name: "2 positive",
			v:    15034,
			want: []byte("150.34"),
		},
		{
			name: "3 positive",
			v:    0,
			want: []byte("0"),
		},
		{
			name: "4 negative amount",
			v:    -250,
			want: []byte("-2.5"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.v.MarshalJSON()

			require.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Money
		wantErr bool
	}{
		{
			name: "1 positive",
			data: []byte("300"),
			want: Money(30000),
		},
		{
			name: "2 positive",
			data: []byte("350.45"),
			want: Money(35045),
		},
		{
			name: "3 positive",
			data: []byte("0"),
			want: Money(0),
		},
		{
			name: "4 quoted",
			data: []byte(`"12.10"`),
			want: Money(1210),
		},
		{
			name: "5 null",
			data: []byte("null"),
			want: Money(0),
		},
		{
			name:    "6 negative garbage",
			data:    []byte(`"abc"`),
			wantErr: true,
		},
		{
			name:    "7 overflows cents",
			data:    []byte("100000000000000000000"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			err := m.UnmarshalJSON(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, m)
		})
	}
}

func TestParsePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr error
	}{
		{name: "1 integer", input: "100", want: 10000},
		{name: "2 fraction", input: "12.5", want: 1250},
		{name: "3 thousands separator", input: "1,000.25", want: 100025},
		{name: "4 zero", input: "0", wantErr: ErrNotPositive},
		{name: "5 negative", input: "-3", wantErr: ErrNotPositive},
		{name: "6 empty", input: "  ", wantErr: ErrInvalidAmount},
		{name: "7 letters", input: "ten", wantErr: ErrInvalidAmount},
		{name: "8 three decimals", input: "1.005", wantErr: ErrTooManyDigits},
		{name: "9 trailing zeros", input: "2.500", want: 250},
		{name: "10 wraps past int64", input: "184467440737095516.17", wantErr: ErrTooLarge},
		{name: "11 far too large", input: "100000000000000000000", wantErr: ErrTooLarge},
		{name: "12 just past int64", input: "92233720368547758.08", wantErr: ErrTooLarge},
		{name: "13 largest cents", input: "92233720368547758.07", want: Money(9223372036854775807)},
		{name: "14 decimal comma", input: "1,5", wantErr: ErrInvalidAmount},
		{name: "15 misplaced separator", input: "10,00.5", wantErr: ErrInvalidAmount},
		{name: "16 grouped millions", input: "1,234,567", want: 123456700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositive(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	require.Equal(t, "150.00", Money(15000).String())
	require.Equal(t, "0.05", Money(5).String())
}
