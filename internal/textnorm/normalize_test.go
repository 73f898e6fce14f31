package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Bill Amount", "Bill Amount"},
		{"emphasis", "**Name:** John Doe", "Name: John Doe"},
		{"cid artifacts", "Due(cid:3)Date(cid:127): 12-02-2025", "DueDate: 12-02-2025"},
		{"newlines and tabs", "  line one\n\n\tline two \r\n line three  ", "line one line two line three"},
		{"only whitespace", " \n\t ", ""},
		{"unrecognized passes through", "(cid:x) ~~keep~~", "(cid:x) ~~keep~~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"**Total**  due\n(cid:12) 450.00",
		"Consumption History: 01-01-2025 to 31-01-2025: 500 units",
		"*single* stars stay",
		"a (cid:1)(cid:2) b",
		"*(cid:1)*nested(cid:(cid:4)9)",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
