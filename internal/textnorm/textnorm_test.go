// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation stripped", in: "Foreign Exchange!!", want: "foreign_exchange"},
		{name: "whitespace collapsed", in: "  Multi   Space ", want: "multi_space"},
		{name: "ampersand dropped", in: "Climate & Sustainability", want: "climate_sustainability"},
		{name: "slash dropped", in: "Payments/Settlement", want: "paymentssettlement"},
		{name: "tabs and newlines", in: "Monetary\tPolicy\n", want: "monetary_policy"},
		{name: "digits kept", in: "Basel III (2010)", want: "basel_iii_2010"},
		{name: "separator kept", in: "foreign_exchange", want: "foreign_exchange"},
		{name: "accented letters kept", in: "Banque de France: Économie", want: "banque_de_france_économie"},
		{name: "decomposed accent composed", in: "E\u0301conomie", want: "\u00e9conomie"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "!?-.,", want: ""},
		{name: "only whitespace", in: " \t\n ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Foreign Exchange!!",
		"  Multi   Space ",
		"Financial Stability Report - 2023",
		"a _ b",
		"__leading and trailing__",
		"İstanbul Şubesi",
		"Ångström ÅNGSTRÖM",
		"Kelvin K sign",
		"Économie",
		"Zentralbank-Bericht (Q1/Q2)",
		"日本銀行 金融政策",
		"\u1100!\u1161",
		"\u1100 \u1161",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_ComposesAfterFiltering(t *testing.T) {
	assert.Equal(t, "\uac00", Normalize("\u1100!\u1161"))
	assert.Equal(t, "\u1100_\u1161", Normalize("\u1100 \u1161"))
}

func FuzzNormalize_Idempotent(f *testing.F) {
	for _, seed := range []string{"Foreign Exchange!!", "İstanbul", "\u1100!\u1161", "\u1100\u0301\u1161", "a\u0300.\u0301b"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize(%q) = %q, Normalize(%q) = %q", in, once, once, twice)
		}
	})
}
