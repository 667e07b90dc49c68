package service

import (
	"unicode"
	"unicode/utf8"

	"github.com/officer-registry/internal/config"
)

// PolicyError 密码策略错误，携带 i18n key 与参数
type PolicyError struct {
	key string
	args []interface{}
}

func (e PolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e PolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key i18n key
func (e PolicyError) Key() string {
	return e.key
}

// Args i18n 参数
func (e PolicyError) Args() []interface{} {
	return e.args
}

type passwordTraits struct {
	upper, lower, number, special bool
}

func inspectPassword(password string) passwordTraits {
	var traits passwordTraits
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			traits.upper = true
		case unicode.IsLower(r):
			traits.lower = true
		case unicode.IsDigit(r):
			traits.number = true
		default:
			traits.special = true
		}
	}
	return traits
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && utf8.RuneCountInString(password) < policy.MinLength {
		return PolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	traits := inspectPassword(password)
	checks := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, traits.upper, "error.password_require_upper"},
		{policy.RequireLower, traits.lower, "error.password_require_lower"},
		{policy.RequireNumber, traits.number, "error.password_require_number"},
		{policy.RequireSpecial, traits.special, "error.password_require_special"},
	}
	for _, check := range checks {
		if check.required && !check.present {
			return PolicyError{key: check.key}
		}
	}
	return nil
}
