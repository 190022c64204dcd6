package payload

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

// ReservedPrefix marks query operators in the document store ($ne, $gt, $where...).
const ReservedPrefix = "$"

// Rule names the check a payload failed.
type Rule string

// Rules applied by Validate.
const (
	RuleOperatorKey   Rule = "operator key"
	RuleOperatorValue Rule = "operator value"
	RuleReservedChar  Rule = "reserved character"
)

// ViolationError reports where a payload failed validation.
type ViolationError struct {
	Path string
	Rule Rule
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %s at %q", domain.ErrForbiddenOperator.Error(), e.Rule, e.Path)
}

func (e *ViolationError) Unwrap() error { return domain.ErrForbiddenOperator }

// Validate rejects p if any key at any depth starts with ReservedPrefix, or any
// text value starts with or contains it. Integers, floats, booleans and nulls are
// never inspected. Validate does not modify p.
func Validate(p Payload) error {
	return validateFields(p, "")
}

func validateFields(p Payload, prefix string) error {
	for _, f := range p.fields {
		path := joinPath(prefix, f.Key)
		if strings.HasPrefix(f.Key, ReservedPrefix) {
			return &ViolationError{Path: path, Rule: RuleOperatorKey}
		}
		if err := validateValue(f.Value, path); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(v Value, path string) error {
	switch v.kind {
	case KindText:
		if strings.HasPrefix(strings.TrimSpace(v.text), ReservedPrefix) {
			return &ViolationError{Path: path, Rule: RuleOperatorValue}
		}
		// Stricter than operator detection: "$" anywhere is rejected, prices included.
		if strings.Contains(v.text, ReservedPrefix) {
			return &ViolationError{Path: path, Rule: RuleReservedChar}
		}
	case KindNested:
		return validateFields(v.nested, path)
	case KindList:
		for i, item := range v.list {
			if err := validateValue(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case KindNull, KindInteger, KindFloat, KindBoolean:
	}
	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
