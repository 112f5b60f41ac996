package pii

import (
	"strings"
	"testing"
)

func TestRedactEnglish(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name        string
		text        string
		wantAbsent  []string
		wantPresent []string
		wantTags    []string
	}{
		{
			name:        "email",
			text:        "Reach me at jane.doe@example.com please",
			wantAbsent:  []string{"jane.doe@example.com"},
			wantPresent: []string{EmailRedacted},
			wantTags:    []string{"email"},
		},
		{
			name:        "us phone",
			text:        "Call 415-555-2671 tomorrow",
			wantAbsent:  []string{"415-555-2671"},
			wantPresent: []string{PhoneRedacted},
			wantTags:    []string{"phone"},
		},
		{
			name:        "introduced name",
			text:        "Hi, my name is John Smith and I need an appointment",
			wantAbsent:  []string{"John Smith"},
			wantPresent: []string{NameRedacted},
			wantTags:    []string{"name"},
		},
		{
			name:        "street address",
			text:        "I live at 42 Maple Street nearby",
			wantAbsent:  []string{"42 Maple Street"},
			wantPresent: []string{AddressRedacted},
			wantTags:    []string{"address"},
		},
		{
			name:        "date",
			text:        "My last visit was 2024-03-15 I think",
			wantAbsent:  []string{"2024-03-15"},
			wantPresent: []string{DateRedacted},
			wantTags:    []string{"date"},
		},
		{
			name:     "clean text untouched",
			text:     "What are your opening hours?",
			wantTags: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tags := r.Redact(tt.text, "en")

			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("redacted text still contains %q: %q", absent, got)
				}
			}
			for _, present := range tt.wantPresent {
				if !strings.Contains(got, present) {
					t.Errorf("redacted text missing %q: %q", present, got)
				}
			}
			if len(tags) != len(tt.wantTags) {
				t.Errorf("tags = %v, want %v", tags, tt.wantTags)
			}
			if len(tt.wantTags) == 0 && got != tt.text {
				t.Errorf("clean text was modified: %q", got)
			}
		})
	}
}

func TestRedactChinese(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name       string
		text       string
		language   string
		wantAbsent string
		wantToken  string
	}{
		{
			name:       "mainland mobile",
			text:       "我的電話是13812345678,謝謝",
			language:   "zh-Hant",
			wantAbsent: "13812345678",
			wantToken:  PhoneRedacted,
		},
		{
			name:       "taiwan mobile",
			text:       "請打0912345678找我",
			language:   "zh-Hant",
			wantAbsent: "0912345678",
			wantToken:  PhoneRedacted,
		},
		{
			name:       "introduced name",
			text:       "我叫陳大文,想預約",
			language:   "zh-Hant",
			wantAbsent: "陳大文",
			wantToken:  NameRedacted,
		},
		{
			name:       "resident id",
			text:       "身份证号11010519491231002X",
			language:   "zh-Hans",
			wantAbsent: "11010519491231002X",
			wantToken:  IDRedacted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.Redact(tt.text, tt.language)

			if strings.Contains(got, tt.wantAbsent) {
				t.Errorf("redacted text still contains %q: %q", tt.wantAbsent, got)
			}
			if !strings.Contains(got, tt.wantToken) {
				t.Errorf("redacted text missing %q: %q", tt.wantToken, got)
			}
		})
	}
}

func TestRedactPhoneInsideLongerDigitRun(t *testing.T) {
	r := NewRedactor()

	// A mobile number embedded in a longer run is not a phone match; the
	// catch-all sweep picks it up instead.
	text := "編號9913812345678991"
	got, tags := r.Redact(text, "zh-Hant")
	if strings.Contains(got, PhoneRedacted) {
		t.Errorf("digit-embedded number was treated as a phone: %q", got)
	}
	for _, tag := range tags {
		if tag == "phone" {
			t.Errorf("unexpected phone tag in %v", tags)
		}
	}

	sanitized, _ := r.SanitizeForLLM(text, "zh-Hant")
	if strings.Contains(sanitized, "9913812345678991") {
		t.Errorf("catch-all sweep missed the digit run: %q", sanitized)
	}
}

func TestSanitizeForLLMCatchAll(t *testing.T) {
	r := NewRedactor()

	got, tags := r.SanitizeForLLM("my patient number is 884422 and my handle is @janed", "en")
	if strings.Contains(got, "884422") {
		t.Errorf("digit run survived sanitization: %q", got)
	}
	if strings.Contains(got, "@janed") {
		t.Errorf("handle survived sanitization: %q", got)
	}
	if !strings.Contains(got, NumberRedacted) || !strings.Contains(got, HandleRedacted) {
		t.Errorf("missing catch-all tokens: %q", got)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v, want number and handle", tags)
	}
}

func TestRedactEmptyInput(t *testing.T) {
	r := NewRedactor()

	got, tags := r.Redact("", "en")
	if got != "" || tags != nil {
		t.Errorf("Redact(\"\") = (%q, %v), want (\"\", nil)", got, tags)
	}

	sanitized, tags := r.SanitizeForLLM("", "zh-Hant")
	if sanitized != "" || tags != nil {
		t.Errorf("SanitizeForLLM(\"\") = (%q, %v), want (\"\", nil)", sanitized, tags)
	}
}

func TestRedactBeforeReturn(t *testing.T) {
	r := NewRedactor()

	got := r.RedactBeforeReturn("You can email us back at clinic.reply@example.com", "en")
	if strings.Contains(got, "clinic.reply@example.com") {
		t.Errorf("outbound email survived redaction: %q", got)
	}
}
