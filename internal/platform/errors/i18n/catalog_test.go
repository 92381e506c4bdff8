package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if GetCatalog("") != base {
		t.Fatal("expected empty locale to resolve to en-US catalog")
	}
}

func TestGetCatalogMatchesRelatedLocale(t *testing.T) {
	base := GetCatalog(BaseLocale)
	if got := GetCatalog("en-GB"); got != base {
		t.Fatalf("expected en-GB to match en-US, got %q", got.Locale())
	}

	if got := GetCatalog("pt"); got.Locale() != "pt-BR" {
		t.Fatalf("expected pt to match pt-BR, got %q", got.Locale())
	}

	fr := NewCatalog("fr-FR", map[Code]string{CodeInvalidArgument: "Argument invalide."})
	RegisterCatalog("fr-FR", fr)
	if got := GetCatalog("fr"); got != fr {
		t.Fatalf("expected fr to match fr-FR, got %q", got.Locale())
	}
}

func TestFormatBaseMessages(t *testing.T) {
	cat := GetCatalog(BaseLocale)
	got := cat.Format(CodeInvalidArgument, map[string]string{
		"Argument": "max genome size",
		"Reason":   "must be at least 1",
	})
	if got != "Invalid max genome size: must be at least 1." {
		t.Fatalf("unexpected message %q", got)
	}
	got = cat.Format(CodeMalformedGenerator, map[string]string{"Depth": "2"})
	if got != "Atom generator did not produce an atom after 2 calls." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessageReportsMissingTemplate(t *testing.T) {
	cat := GetCatalog("pt-BR")
	msg, ok := cat.Message(CodeMalformedGenerator, map[string]string{"Depth": "2"})
	if !ok || msg != "O gerador de átomos não produziu um átomo após 2 chamadas." {
		t.Fatalf("unexpected message %q (ok=%v)", msg, ok)
	}
	if _, ok := cat.Message("UNKNOWN", nil); ok {
		t.Fatal("expected no template for UNKNOWN")
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestNewCatalogCopiesMessages(t *testing.T) {
	messages := map[Code]string{"code": "one"}
	cat := NewCatalog("test", messages)
	messages["code"] = "two"
	if cat.Format("code", nil) != "one" {
		t.Fatal("expected catalog to keep its own copy of messages")
	}
}
