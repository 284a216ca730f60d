package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "user.name+tag@sub.domain.org", "u@d.io"}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), "expected %q to be valid", e)
	}

	invalid := []string{"", "plain", "no@tld", "@x.com", "a@", "a b@x.com", "a@x .com"}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), "expected %q to be invalid", e)
	}
}

func TestCheckPassword_RuleOrder(t *testing.T) {
	cases := []struct {
		password string
		want     string
	}{
		{"short", "Password must have at least 8 characters"},
		// Too short AND all lowercase: length rule must win.
		{"abc", "Password must have at least 8 characters"},
		{"alllowercase1!", "Password must have at least 1 upper case character"},
		{"NoDigitsHere!", "Password must have at least 1 number"},
		{"NoSymbols123", "Password must have at least 1 special character"},
		{"Str0ng!pw", ""},
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckPassword(tc.password))
		})
	}
}
