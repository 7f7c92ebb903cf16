package chart

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout selects how label dates are written.
type DateLayout int

const (
	// DateCorrected writes "MM DD, YYYY", e.g. "01 03, 2021".
	DateCorrected DateLayout = iota
	// DateLegacy reproduces the original "MM dd, yyyyy" pattern, which pads
	// the year to five digits, e.g. "01 03, 02021".
	DateLegacy
)

const correctedLayout = "01 02, 2006"

var defaultPrinter = message.NewPrinter(language.AmericanEnglish)

// Label is the text shown for the highlighted record.
type Label struct {
	Number string
	Date   string
}

// Formatter renders label values. The zero value groups numbers the US
// English way and uses DateCorrected.
type Formatter struct {
	printer *message.Printer
	layout  DateLayout
}

// NewFormatter returns a Formatter that groups integers according to tag.
func NewFormatter(tag language.Tag, layout DateLayout) Formatter {
	return Formatter{printer: message.NewPrinter(tag), layout: layout}
}

// DefaultFormatter groups integers the US English way and uses DateCorrected.
func DefaultFormatter() Formatter {
	return NewFormatter(language.AmericanEnglish, DateCorrected)
}

// Number formats n with thousands separators and no decimal places.
func (f Formatter) Number(n int64) string {
	if f.printer == nil {
		return defaultPrinter.Sprintf("%d", n)
	}
	return f.printer.Sprintf("%d", n)
}

// Date formats the calendar date of t.
func (f Formatter) Date(t time.Time) string {
	if f.layout == DateLegacy {
		return fmt.Sprintf("%02d %02d, %05d", int(t.Month()), t.Day(), t.Year())
	}
	return t.Format(correctedLayout)
}
