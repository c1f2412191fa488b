package lint

import "strings"

// Rule is one lint heuristic. The set of rules is fixed; ids are stable and
// double as configuration keys and diagnostic codes.
type Rule struct {
	ID          string
	Description string
	Default     Level
}

// Registered rules.
var (
	AllVendorPrefixes = Rule{
		ID:          "compatibleVendorPrefixes",
		Description: "When using a vendor-specific prefix make sure to also include all other vendor-specific properties",
		Default:     Ignore,
	}
	IncludeStandardPropertyWhenUsingVendorPrefix = Rule{
		ID:          "vendorPrefix",
		Description: "When using a vendor-specific prefix also include the standard property",
		Default:     Warning,
	}
	DuplicateDeclarations = Rule{
		ID:          "duplicateProperties",
		Description: "Do not use duplicate style definitions",
		Default:     Ignore,
	}
	EmptyRuleSet = Rule{
		ID:          "emptyRules",
		Description: "Do not use empty rulesets",
		Default:     Warning,
	}
	ImportStatement = Rule{
		ID:          "importStatement",
		Description: "Import statements do not load in parallel",
		Default:     Ignore,
	}
	BewareOfBoxModelSize = Rule{
		ID:          "boxModel",
		Description: "Do not use width or height when using padding or border",
		Default:     Ignore,
	}
	UniversalSelector = Rule{
		ID:          "universalSelector",
		Description: "The universal selector (*) is known to be slow",
		Default:     Ignore,
	}
	ZeroWithUnit = Rule{
		ID:          "zeroUnits",
		Description: "No unit for zero needed",
		Default:     Ignore,
	}
	RequiredPropertiesForFontFace = Rule{
		ID:          "fontFaceProperties",
		Description: "@font-face rule must define 'src' and 'font-family' properties",
		Default:     Warning,
	}
	HexColorLength = Rule{
		ID:          "hexColorLength",
		Description: "Hex colors must consist of three or six hex numbers",
		Default:     Error,
	}
	ArgsInColorFunction = Rule{
		ID:          "argumentsInColorFunction",
		Description: "Invalid number of parameters",
		Default:     Error,
	}
	UnknownProperty = Rule{
		ID:          "unknownProperties",
		Description: "Unknown property.",
		Default:     Warning,
	}
	IEStarHack = Rule{
		ID:          "ieHack",
		Description: "IE hacks are only necessary when supporting IE7 and older",
		Default:     Ignore,
	}
	UnknownVendorSpecificProperty = Rule{
		ID:          "unknownVendorSpecificProperties",
		Description: "Unknown vendor specific property.",
		Default:     Ignore,
	}
	PropertyIgnoredDueToDisplay = Rule{
		ID:          "propertyIgnoredDueToDisplay",
		Description: "Property is ignored due to the display.",
		Default:     Warning,
	}
	AvoidImportant = Rule{
		ID:          "important",
		Description: "Avoid using !important. It is an indication that the specificity of the entire CSS has gotten out of control and needs to be refactored.",
		Default:     Ignore,
	}
	AvoidFloat = Rule{
		ID:          "float",
		Description: "Avoid using 'float'. Floats lead to fragile CSS that is easy to break if one aspect of the layout changes.",
		Default:     Ignore,
	}
	AvoidIDSelector = Rule{
		ID:          "idSelector",
		Description: "Selectors should not contain IDs because these rules are too tightly coupled with the HTML.",
		Default:     Ignore,
	}
)

var registry = []Rule{
	AllVendorPrefixes,
	IncludeStandardPropertyWhenUsingVendorPrefix,
	DuplicateDeclarations,
	EmptyRuleSet,
	ImportStatement,
	BewareOfBoxModelSize,
	UniversalSelector,
	ZeroWithUnit,
	RequiredPropertiesForFontFace,
	HexColorLength,
	ArgsInColorFunction,
	UnknownProperty,
	IEStarHack,
	UnknownVendorSpecificProperty,
	PropertyIgnoredDueToDisplay,
	AvoidImportant,
	AvoidFloat,
	AvoidIDSelector,
}

// Rules returns every registered rule in registry order.
func Rules() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a rule by id, ignoring case.
func Lookup(id string) (Rule, bool) {
	for _, r := range registry {
		if strings.EqualFold(r.ID, id) {
			return r, true
		}
	}
	return Rule{}, false
}
