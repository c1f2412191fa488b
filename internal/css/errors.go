package css

import (
	"fmt"
	"strings"
)

// Language selects the dialect accepted by Parse.
type Language int

// Supported dialects.
const (
	CSS Language = iota
	SCSS
	LESS
)

func (l Language) String() string {
	switch l {
	case SCSS:
		return "scss"
	case LESS:
		return "less"
	default:
		return "css"
	}
}

// ParseLanguage maps a language id ("css", "scss", "less") to a Language.
func ParseLanguage(id string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "css", "":
		return CSS, nil
	case "scss", "sass":
		return SCSS, nil
	case "less":
		return LESS, nil
	default:
		return CSS, fmt.Errorf("unsupported language %q", id)
	}
}

// ErrorID identifies a kind of syntax error.
type ErrorID string

// Syntax error ids.
const (
	ErrLeftCurlyExpected        ErrorID = "css-lcurlyexpected"
	ErrRightCurlyExpected       ErrorID = "css-rcurlyexpected"
	ErrColonExpected            ErrorID = "css-colonexpected"
	ErrSemiColonExpected        ErrorID = "css-semicolonexpected"
	ErrPropertyValueExpected    ErrorID = "css-propertyvalueexpected"
	ErrIdentifierExpected       ErrorID = "css-identifierexpected"
	ErrRuleOrSelectorExpected   ErrorID = "css-ruleorselectorexpected"
	ErrURIOrStringExpected      ErrorID = "css-uriorstringexpected"
	ErrRightParenthesisExpected ErrorID = "css-rparentexpected"
	ErrSelectorExpected         ErrorID = "css-selectorexpected"
	ErrTermExpected             ErrorID = "css-termexpected"
)

var errorMessages = map[ErrorID]string{
	ErrLeftCurlyExpected:        "{ expected",
	ErrRightCurlyExpected:       "} expected",
	ErrColonExpected:            "colon expected",
	ErrSemiColonExpected:        "semi-colon expected",
	ErrPropertyValueExpected:    "property value expected",
	ErrIdentifierExpected:       "identifier expected",
	ErrRuleOrSelectorExpected:   "at-rule or selector expected",
	ErrURIOrStringExpected:      "URI or string expected",
	ErrRightParenthesisExpected: ") expected",
	ErrSelectorExpected:         "selector expected",
	ErrTermExpected:             "term expected",
}

// Message returns the English text for the error id.
func (id ErrorID) Message() string {
	if m, ok := errorMessages[id]; ok {
		return m
	}
	return string(id)
}

// ParseError is a syntax error located in the source.
type ParseError struct {
	ID      ErrorID
	Message string
	Offset  int
	Length  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d: %s (%s)", e.Offset, e.Message, e.ID)
}
