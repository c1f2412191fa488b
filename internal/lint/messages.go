package lint

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Printer formats a catalog message. *message.Printer implements it.
type Printer interface {
	Sprintf(key message.Reference, a ...any) string
}

type messageDef struct {
	id       string
	fallback string
}

func (m messageDef) key() message.Reference { return message.Key(m.id, m.fallback) }

var (
	msgKeyframesStandardMissing = messageDef{
		"keyframes.standardrule.missing",
		"Always define standard rule '@keyframes' when defining keyframes.",
	}
	msgKeyframesVendorMissing = messageDef{
		"keyframes.vendorspecific.missing",
		"Always include all vendor specific rules: Missing: %s",
	}
	msgPropertyStandardMissing = messageDef{
		"property.standard.missing",
		"Also define the standard property '%s' for compatibility",
	}
	msgPropertyVendorMissing = messageDef{
		"property.vendorspecific.missing",
		"Always include all vendor specific properties: Missing: %s",
	}
	msgIgnoredDisplayInline = messageDef{
		"rule.propertyIgnoredDueToDisplayInline",
		"Property is ignored due to the display. With 'display: inline', the width, height, margin-top, margin-bottom, and float properties have no effect.",
	}
	msgIgnoredDisplayInlineBlock = messageDef{
		"rule.propertyIgnoredDueToDisplayInlineBlock",
		"inline-block is ignored due to the float. If 'float' has a value other than 'none', the box is floated and 'display' is treated as 'block'",
	}
	msgIgnoredDisplayBlock = messageDef{
		"rule.propertyIgnoredDueToDisplayBlock",
		"Property is ignored due to the display. With 'display: block', vertical-align should not be used.",
	}
	msgNameSingle = messageDef{
		"namelist.single",
		"'%s'",
	}
	msgNameConcatenated = messageDef{
		"namelist.concatenated",
		"%s, '%s'",
	}
)

var catalogMessages = []messageDef{
	msgKeyframesStandardMissing,
	msgKeyframesVendorMissing,
	msgPropertyStandardMissing,
	msgPropertyVendorMissing,
	msgIgnoredDisplayInline,
	msgIgnoredDisplayInlineBlock,
	msgIgnoredDisplayBlock,
	msgNameSingle,
	msgNameConcatenated,
}

// NewCatalog builds a catalog holding the English lint messages. Callers may
// add translations with SetString before handing it to NewPrinter.
func NewCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, m := range catalogMessages {
		if err := b.SetString(language.English, m.id, m.fallback); err != nil {
			return nil, fmt.Errorf("register message %s: %w", m.id, err)
		}
	}
	return b, nil
}

// NewPrinter returns a printer for tag backed by NewCatalog. Messages fall
// back to English text if the catalog cannot be built.
func NewPrinter(tag language.Tag) Printer {
	b, err := NewCatalog()
	if err != nil {
		return message.NewPrinter(tag)
	}
	return message.NewPrinter(tag, message.Catalog(b))
}
