package config

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
)

// ButtonSectionPrefix is the fixed prefix of button sections: button_1 ... button_5.
const ButtonSectionPrefix = "button_"

var buttonSectionPattern = regexp.MustCompile(`^` + ButtonSectionPrefix + `([1-9][0-9]*)$`)

// buttonField enumerates the recognized keys of a button section.
type buttonField int

const (
	fieldLabel buttonField = iota
	fieldCommand
	fieldRed
	fieldGreen
	fieldBlue
	fieldAlpha
	fieldHoverRed
	fieldHoverGreen
	fieldHoverBlue
	fieldHoverAlpha
	fieldTextRed
	fieldTextGreen
	fieldTextBlue
	fieldTextAlpha

	fieldCount
)

// buttonFieldKeys maps config keys to fields; the slice order is the
// canonical key order used in diagnostics.
var buttonFieldKeys = []string{
	fieldLabel:      "label",
	fieldCommand:    "command",
	fieldRed:        "red",
	fieldGreen:      "green",
	fieldBlue:       "blue",
	fieldAlpha:      "alpha",
	fieldHoverRed:   "hover_red",
	fieldHoverGreen: "hover_green",
	fieldHoverBlue:  "hover_blue",
	fieldHoverAlpha: "hover_alpha",
	fieldTextRed:    "text_red",
	fieldTextGreen:  "text_green",
	fieldTextBlue:   "text_blue",
	fieldTextAlpha:  "text_alpha",
}

func lookupButtonField(key string) (buttonField, bool) {
	for f, k := range buttonFieldKeys {
		if k == key {
			return buttonField(f), true
		}
	}
	return 0, false
}

// LoadOptions tunes how button sections are interpreted.
type LoadOptions struct {
	// LegacyHoverAlpha reproduces the key handling of the first panel release,
	// where hover_alpha overwrote the hover blue component and the hover alpha
	// itself stayed 0. Off by default.
	LegacyHoverAlpha bool
}

// buttonRecord accumulates the fields of one section until text_alpha finalizes it.
type buttonRecord struct {
	section string
	index   int

	label   string
	command string
	fill    color.RGBA
	hover   color.RGBA
	text    color.RGBA

	seen      [fieldCount]bool
	finalized bool
}

func (r *buttonRecord) missing() []string {
	var keys []string
	for f := buttonField(0); f < fieldCount; f++ {
		if f == fieldTextAlpha {
			continue
		}
		if !r.seen[f] {
			keys = append(keys, buttonFieldKeys[f])
		}
	}
	return keys
}

// ButtonLoader turns section/key/value events into the ordered button list.
//
// A loader is scoped to one parse: create it, pass Handle as the Handler,
// then call Buttons once parsing succeeded. The working record of each
// section lives in the loader, never in package state.
type ButtonLoader struct {
	opts    LoadOptions
	log     zerolog.Logger
	records map[int]*buttonRecord
	dropped map[string]bool
}

// NewButtonLoader creates a loader for a single parse.
func NewButtonLoader(opts LoadOptions, logger zerolog.Logger) *ButtonLoader {
	return &ButtonLoader{
		opts:    opts,
		log:     logger,
		records: make(map[int]*buttonRecord),
		dropped: make(map[string]bool),
	}
}

// ParseButtonSection reports the 1-based position encoded in a section name.
// It returns false for names that do not follow the button_N pattern or
// whose index lies outside 1..MaxButtons.
func ParseButtonSection(section string) (int, bool) {
	m := buttonSectionPattern.FindStringSubmatch(section)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > MaxButtons {
		return 0, false
	}
	return n, true
}

// Handle is the parse callback. Entries of non-button sections are ignored.
func (l *ButtonLoader) Handle(section, key, value string) error {
	index, ok := ParseButtonSection(section)
	if !ok {
		if buttonSectionPattern.MatchString(section) && !l.dropped[section] {
			l.dropped[section] = true
			l.log.Warn().Str("section", section).Int("max", MaxButtons).Msg("button section beyond limit dropped")
		}
		return nil
	}

	rec := l.records[index]
	if rec == nil {
		rec = &buttonRecord{section: section, index: index}
		l.records[index] = rec
	}

	if rec.finalized {
		l.log.Warn().Str("section", section).Str("key", key).Msg("key after text_alpha ignored")
		return nil
	}

	field, ok := lookupButtonField(key)
	if !ok {
		l.log.Debug().Str("section", section).Str("key", key).Msg("unrecognized key ignored")
		return nil
	}

	switch field {
	case fieldLabel:
		if strings.TrimSpace(value) == "" {
			return sectionError(section, "label must not be empty")
		}
		rec.label = value
	case fieldCommand:
		if strings.TrimSpace(value) == "" {
			return sectionError(section, "command must not be empty")
		}
		rec.command = value
	default:
		c, err := parseColorComponent(value)
		if err != nil {
			return sectionError(section, "%s: %v", key, err)
		}
		l.setColor(rec, field, c)
	}
	rec.seen[field] = true

	if field == fieldTextAlpha {
		if missing := rec.missing(); len(missing) > 0 {
			return sectionError(section, "text_alpha finalizes the button but %s not set", strings.Join(missing, ", "))
		}
		rec.finalized = true
		l.log.Debug().Str("section", section).Str("label", rec.label).Msg("button finalized")
	}
	return nil
}

func (l *ButtonLoader) setColor(rec *buttonRecord, field buttonField, c uint8) {
	switch field {
	case fieldRed:
		rec.fill.R = c
	case fieldGreen:
		rec.fill.G = c
	case fieldBlue:
		rec.fill.B = c
	case fieldAlpha:
		rec.fill.A = c
	case fieldHoverRed:
		rec.hover.R = c
	case fieldHoverGreen:
		rec.hover.G = c
	case fieldHoverBlue:
		rec.hover.B = c
	case fieldHoverAlpha:
		if l.opts.LegacyHoverAlpha {
			rec.hover.B = c
			rec.seen[fieldHoverBlue] = true
			return
		}
		rec.hover.A = c
	case fieldTextRed:
		rec.text.R = c
	case fieldTextGreen:
		rec.text.G = c
	case fieldTextBlue:
		rec.text.B = c
	case fieldTextAlpha:
		rec.text.A = c
	}
}

// Buttons returns the finalized buttons ordered by section index, with the
// layout geometry applied to each final position. Sections that were never
// finalized are dropped with a warning.
func (l *ButtonLoader) Buttons() []components.LauncherButton {
	indices := make([]int, 0, len(l.records))
	for index, rec := range l.records {
		if !rec.finalized {
			l.log.Warn().Str("section", rec.section).Msg("section without text_alpha dropped")
			continue
		}
		indices = append(indices, index)
	}
	sort.Ints(indices)

	buttons := make([]components.LauncherButton, 0, len(indices))
	for pos, index := range indices {
		rec := l.records[index]
		x, y, w, h := ButtonRect(pos)
		buttons = append(buttons, components.LauncherButton{
			Label:          rec.label,
			Command:        rec.command,
			Rect:           components.Rect{X: x, Y: y, Width: w, Height: h},
			FillColor:      rec.fill,
			HoverFillColor: rec.hover,
			TextColor:      rec.text,
			Section:        index,
		})
	}
	return buttons
}

// parseColorComponent accepts decimal and 0x/0o/0b prefixed integers in the
// range 0..255, optionally signed. A single _ may separate two digits.
// Leading zeros are decimal, not octal.
func parseColorComponent(value string) (uint8, error) {
	s := strings.TrimSpace(value)

	sign := ""
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		sign, s = s[:1], s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}

	if !validDigitSeparators(s) {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	n, err := strconv.ParseInt(sign+strings.ReplaceAll(s, "_", ""), base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%d is outside 0..255", n)
	}
	return uint8(n), nil
}

// validDigitSeparators reports whether every _ in digits sits between two
// non-separator characters.
func validDigitSeparators(digits string) bool {
	for i := 0; i < len(digits); i++ {
		if digits[i] != '_' {
			continue
		}
		if i == 0 || i == len(digits)-1 || digits[i-1] == '_' || digits[i+1] == '_' {
			return false
		}
	}
	return true
}
