package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("axis_count", nil); msg == "axis_count" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("axis_count", nil); msg == "only 2, 3, 4, or 5 axes are allowed" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code passthrough, got %q", msg)
	}
}

func TestTranslator_DictionariesCoverTheSameCodes(t *testing.T) {
	for code := range enMessages {
		if _, ok := jaMessages[code]; !ok {
			t.Errorf("code %q missing from the ja dictionary", code)
		}
	}
	for code := range jaMessages {
		if _, ok := enMessages[code]; !ok {
			t.Errorf("code %q missing from the en dictionary", code)
		}
	}
}

func TestTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(staticTranslator{})
	if msg := T("axis_count", nil); msg != "boom" {
		t.Fatalf("expected custom translator, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("axis_count", nil); msg == "boom" {
		t.Fatalf("expected reset to built-in, got %q", msg)
	}
}

type staticTranslator struct{}

func (staticTranslator) Message(code string, data map[string]string) string { return "boom" }
