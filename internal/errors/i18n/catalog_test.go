package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog(BaseLocale)
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if GetCatalog("missing-locale") != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if GetCatalog("") != base {
		t.Fatal("expected empty locale to use en-US catalog")
	}
	if GetCatalog("ru-RU").Locale() != "ru-RU" {
		t.Fatal("expected ru-RU catalog")
	}
}

func TestFormat(t *testing.T) {
	cat := GetCatalog(BaseLocale)

	got := cat.Format(CodeAmountMismatch, map[string]string{"Expected": "100.00 RUB"})
	want := "Sum of participant amounts must equal the expense amount (100.00 RUB)"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := cat.Format(CodeNotFound, map[string]string{"Resource": "expense"}); got != "expense not found" {
		t.Errorf("Format(NOT_FOUND) = %q", got)
	}
	if got := cat.Format(CodeNotFound, nil); got != "Not found" {
		t.Errorf("Format(NOT_FOUND, nil) = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code":   "hello {{.Name}}",
		"broken": "{{ if .Name }}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello " {
		t.Fatalf("expected missing metadata to render empty, got %q", cat.Format("code", nil))
	}
	if cat.Format("broken", nil) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en-US"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "ru-RU"},
		{"ru", "ru-RU"},
		{"en-GB", "en-US"},
		{"de-DE", "en-US"},
		{"not a header;;", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := ResolveLocale(tt.header); got != tt.want {
				t.Errorf("ResolveLocale(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestCatalogsCoverSameCodes(t *testing.T) {
	for code := range enUSCatalog.messages {
		if _, ok := ruRUCatalog.messages[code]; !ok {
			t.Errorf("ru-RU catalog missing %s", code)
		}
	}
}
