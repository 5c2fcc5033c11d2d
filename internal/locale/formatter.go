package locale

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	minSignificantDigits = 2
	maxSignificantDigits = 3
)

// Formatter renders statistics for a display language.
type Formatter struct {
	fallback   language.Tag
	overrides  map[string]language.Tag
	rtlScripts map[language.Script]struct{}
}

type Option func(*Formatter)

// WithFallback sets the locale used when a language cannot be parsed.
func WithFallback(lang string) Option {
	return func(f *Formatter) {
		if tag, err := language.Parse(lang); err == nil {
			f.fallback = tag
		}
	}
}

// WithNumberLocale formats numbers for lang using numberLocale's conventions.
func WithNumberLocale(lang, numberLocale string) Option {
	return func(f *Formatter) {
		if tag, err := language.Parse(numberLocale); err == nil {
			f.overrides[normalize(lang)] = tag
		}
	}
}

// WithRightToLeftScripts replaces the set of scripts treated as right to left.
func WithRightToLeftScripts(scripts ...string) Option {
	return func(f *Formatter) {
		f.rtlScripts = make(map[language.Script]struct{}, len(scripts))
		for _, s := range scripts {
			if script, err := language.ParseScript(s); err == nil {
				f.rtlScripts[script] = struct{}{}
			}
		}
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{
		fallback:  language.English,
		overrides: map[string]language.Tag{"fa": language.English},
	}
	WithRightToLeftScripts(DefaultRightToLeftScripts...)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatDecimal renders v with 2 to 3 significant digits.
func (f *Formatter) FormatDecimal(v float64, lang string) string {
	rounded, frac := significant(v)
	p := message.NewPrinter(f.numberTag(lang))
	return p.Sprint(number.Decimal(rounded, number.MinFractionDigits(frac), number.MaxFractionDigits(frac)))
}

// FormatPercent renders a fraction (0.674) as a percentage ("67.4%") with 2 to 3
// significant digits in the percentage value.
func (f *Formatter) FormatPercent(v float64, lang string) string {
	rounded, frac := significant(v * 100)
	p := message.NewPrinter(f.numberTag(lang))
	return p.Sprint(number.Percent(rounded/100, number.MinFractionDigits(frac), number.MaxFractionDigits(frac)))
}

// MoreThan renders a lower-bound quantity such as "100,000+"; right-to-left
// languages get the indicator in front ("+100,000").
func (f *Formatter) MoreThan(v float64, indicator, lang string) string {
	return PlaceIndicator(f.FormatDecimal(v, lang), indicator, f.Direction(lang))
}

// Direction derives the writing direction from the language's script.
func (f *Formatter) Direction(lang string) Direction {
	script, _ := f.tag(lang).Script()
	if _, ok := f.rtlScripts[script]; ok {
		return RightToLeft
	}
	return LeftToRight
}

func (f *Formatter) IsRightToLeft(lang string) bool {
	return f.Direction(lang) == RightToLeft
}

func (f *Formatter) tag(lang string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return f.fallback
	}
	return tag
}

func (f *Formatter) numberTag(lang string) language.Tag {
	if tag, ok := f.overrides[normalize(lang)]; ok {
		return tag
	}
	return f.tag(lang)
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// significant rounds v to at most maxSignificantDigits and returns it with the
// number of fraction digits needed to show between min and max significant digits.
func significant(v float64) (float64, int) {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, minSignificantDigits - 1
	}

	s := strconv.FormatFloat(v, 'e', maxSignificantDigits-1, 64)
	mantissa, exponent, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(exponent)

	digits := strings.TrimLeft(strings.Replace(mantissa, ".", "", 1), "-")
	digits = strings.TrimRight(digits, "0")
	sig := len(digits)
	if sig < minSignificantDigits {
		sig = minSignificantDigits
	}

	frac := sig - 1 - exp
	if frac < 0 {
		frac = 0
	}
	rounded, _ := strconv.ParseFloat(s, 64)
	return rounded, frac
}
