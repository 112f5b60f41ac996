package pii

import (
	"regexp"
	"strings"
)

// Redaction placeholder tokens, one per category.
const (
	PhoneRedacted   = "[PHONE_REDACTED]"
	EmailRedacted   = "[EMAIL_REDACTED]"
	IDRedacted      = "[ID_REDACTED]"
	NameRedacted    = "[NAME_REDACTED]"
	AddressRedacted = "[ADDRESS_REDACTED]"
	DateRedacted    = "[DATE_REDACTED]"
	NumberRedacted  = "[NUMBER_REDACTED]"
	HandleRedacted  = "[HANDLE_REDACTED]"
)

// Redactor masks PII in English and Chinese text. Pattern application is
// best-effort: a failure inside a pass returns the original text with no
// tags rather than blocking the pipeline. This is a safety caveat, not a
// leak-prevention guarantee.
type Redactor struct {
	email   []*regexp.Regexp
	idEn    []*regexp.Regexp
	idZh    []*regexp.Regexp
	phoneEn []*regexp.Regexp
	phoneZh []*regexp.Regexp
	names   map[string][]*regexp.Regexp
	addrEn  []*regexp.Regexp
	addrZh  []*regexp.Regexp
	dates   []*regexp.Regexp

	// catch-all sweep, applied after the category passes
	digitRun *regexp.Regexp
	handle   *regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile("(?i)" + p)
	}
	return res
}

func NewRedactor() *Redactor {
	return &Redactor{
		email: compileAll(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		idEn:  compileAll(`\d{3}[-.\s]?\d{2}[-.\s]?\d{4}`),
		idZh: compileAll(
			`[1-9]\d{5}(18|19|20)\d{2}(0[1-9]|1[012])(0[1-9]|[12]\d|3[01])\d{3}[\dXx]`,
			`[A-Z]\d{9}`,
		),
		phoneEn: compileAll(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
		// Mainland, Taiwan, and Hong Kong mobile formats. RE2 has no
		// lookbehind, so the not-adjacent-to-digits rule is enforced by
		// replaceDigitBounded instead of (?<!\d)/(?!\d).
		phoneZh: compileAll(
			`(?:\+?86[-.\s]?)?1[3-9]\d{9}`,
			`(?:\+?886[-.\s]?)?09\d{8}`,
			`(?:\+?852[-.\s]?)?[569]\d{7}`,
		),
		names: map[string][]*regexp.Regexp{
			"en": compileAll(
				`\bmy name is\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`,
				`\bi am\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`,
				`\bi'm\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`,
			),
			"zh-Hans": compileAll(
				`我叫([\x{4e00}-\x{9fff}]{2,4})`,
				`我是([\x{4e00}-\x{9fff}]{2,4})`,
				`我的名字是([\x{4e00}-\x{9fff}]{2,4})`,
			),
			"zh-Hant": compileAll(
				`我叫([\x{4e00}-\x{9fff}]{2,4})`,
				`我是([\x{4e00}-\x{9fff}]{2,4})`,
				`我的名字是([\x{4e00}-\x{9fff}]{2,4})`,
			),
		},
		addrEn: compileAll(`\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)`),
		addrZh: compileAll(
			`[\x{4e00}-\x{9fff}]+[市区縣县][\x{4e00}-\x{9fff}]+[路街道巷弄]\d*号?`,
			`[\x{4e00}-\x{9fff}]+省[\x{4e00}-\x{9fff}]+市`,
		),
		dates:    compileAll(`(19|20)\d{2}[-/年](0?[1-9]|1[0-2])[-/月](0?[1-9]|[12][0-9]|3[01])日?`),
		digitRun: regexp.MustCompile(`\b\d{4,}\b`),
		handle:   regexp.MustCompile(`@\w+`),
	}
}

// Redact applies the category passes in a fixed order: email, ID numbers,
// phones, names (recognized language keys only), addresses, dates. Later
// passes operate on the output of earlier ones, so more specific patterns
// must run before the looser numeric ones. Returns the redacted text and
// one tag per replacement made.
func (r *Redactor) Redact(text, language string) (redacted string, tags []string) {
	if text == "" {
		return text, nil
	}

	// Fail-open: any internal pattern failure returns the input untouched.
	defer func() {
		if recover() != nil {
			redacted, tags = text, nil
		}
	}()

	redacted = text
	zh := strings.HasPrefix(language, "zh")

	for _, re := range r.email {
		redacted = replaceCounted(re, redacted, EmailRedacted, "email", &tags)
	}

	ids := r.idEn
	if zh {
		ids = r.idZh
	}
	for _, re := range ids {
		redacted = replaceCounted(re, redacted, IDRedacted, "id", &tags)
	}

	phones := r.phoneEn
	if zh {
		phones = r.phoneZh
	}
	for _, re := range phones {
		if zh {
			redacted = replaceDigitBounded(re, redacted, PhoneRedacted, "phone", &tags)
		} else {
			redacted = replaceCounted(re, redacted, PhoneRedacted, "phone", &tags)
		}
	}

	if namePatterns, ok := r.names[language]; ok {
		for _, re := range namePatterns {
			redacted = replaceNameGroup(re, redacted, &tags)
		}
	}

	addrs := r.addrEn
	if zh {
		addrs = r.addrZh
	}
	for _, re := range addrs {
		redacted = replaceCounted(re, redacted, AddressRedacted, "address", &tags)
	}

	for _, re := range r.dates {
		redacted = replaceCounted(re, redacted, DateRedacted, "date", &tags)
	}

	return redacted, tags
}

// SanitizeForLLM redacts text before it is sent to any language model.
// On top of the category passes it masks any standalone run of 4+ digits
// and any @handle token. The sweep may double-redact already masked text.
func (r *Redactor) SanitizeForLLM(text, language string) (string, []string) {
	if text == "" {
		return "", nil
	}
	redacted, tags := r.Redact(text, language)
	redacted = replaceCounted(r.digitRun, redacted, NumberRedacted, "number", &tags)
	redacted = replaceCounted(r.handle, redacted, HandleRedacted, "handle", &tags)
	return redacted, tags
}

// RedactBeforeReturn applies the same passes to generated output before it
// is returned to the caller.
func (r *Redactor) RedactBeforeReturn(text, language string) string {
	redacted, _ := r.SanitizeForLLM(text, language)
	return redacted
}

func replaceCounted(re *regexp.Regexp, text, replacement, tag string, tags *[]string) string {
	n := len(re.FindAllStringIndex(text, -1))
	if n == 0 {
		return text
	}
	for i := 0; i < n; i++ {
		*tags = append(*tags, tag)
	}
	return re.ReplaceAllLiteralString(text, replacement)
}

// replaceDigitBounded replaces matches that are not immediately preceded or
// followed by another digit, so an 11-digit mobile number inside a longer
// numeric run is left for the catch-all sweep instead of being mangled.
func replaceDigitBounded(re *regexp.Regexp, text, replacement, tag string, tags *[]string) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start < last {
			continue
		}
		if (start > 0 && isDigit(text[start-1])) || (end < len(text) && isDigit(text[end])) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(replacement)
		*tags = append(*tags, tag)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// replaceNameGroup masks the captured name (group 1), wherever it occurs,
// rather than the whole match, keeping the introduction phrase readable.
func replaceNameGroup(re *regexp.Regexp, text string, tags *[]string) string {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 || m[1] == "" {
			continue
		}
		text = strings.ReplaceAll(text, m[1], NameRedacted)
		*tags = append(*tags, "name")
	}
	return text
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
