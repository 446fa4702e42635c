package validation

import (
	"regexp"
	"strconv"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 16
)

var CompiledPatterns = struct {
	Lowercase     *regexp.Regexp
	Uppercase     *regexp.Regexp
	Digit         *regexp.Regexp
	NonAlnum      *regexp.Regexp
	StrictEmail   *regexp.Regexp
	StudentNumber *regexp.Regexp
}{
	Lowercase:     regexp.MustCompile(`[a-z]`),
	Uppercase:     regexp.MustCompile(`[A-Z]`),
	Digit:         regexp.MustCompile(`\d`),
	NonAlnum:      regexp.MustCompile(`[^a-zA-Z0-9]`),
	StrictEmail:   regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
	StudentNumber: regexp.MustCompile(`^[A-Z]\d{3}[A-Z]\d{4}$`),
}

// Password attaches the shared account password policy to a field.
func Password(fv *FieldValidator) *FieldValidator {
	return fv.
		Length(PasswordMinLength, PasswordMaxLength, "パスワードは8～16文字で入力してください").
		Matches(CompiledPatterns.Lowercase, "パスワードには小文字を含めてください").
		Matches(CompiledPatterns.Uppercase, "パスワードには大文字を含めてください").
		Matches(CompiledPatterns.Digit, "パスワードには数字を含めてください").
		NotMatches(CompiledPatterns.NonAlnum, "パスワードに特殊記号を含めることはできません")
}

// ValidPassword reports whether password satisfies the policy.
func ValidPassword(password string) bool {
	v := NewValidator()
	Password(v.Field("password", password))
	return v.Validate() == nil
}

// ParseID registers a required integer field and returns its parsed value,
// or 0 when the value is missing or malformed.
func ParseID(v *ValidationBuilder, field, raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	v.Field(field, raw).
		Required(field + "は必須です").
		Custom(func(interface{}) (string, bool) {
			return field + "は数値で指定してください", err == nil
		})
	return id
}
