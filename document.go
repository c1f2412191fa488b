package csslint

// Document is a text document handed to the validator.
type Document struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Text       string `json:"text"`
}

// LanguageSettings are the user settings for one stylesheet language.
//
// Validate disables validation entirely when explicitly false. Lint maps rule
// ids to level names ("ignore", "warning", "error"). Unrecognized values are
// dropped and unknown ids have no effect.
type LanguageSettings struct {
	Validate *bool          `json:"validate,omitempty" yaml:"validate,omitempty"`
	Lint     map[string]any `json:"lint,omitempty" yaml:"lint,omitempty"`
}
