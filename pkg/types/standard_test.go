package types

import (
	"testing"
	"unicode/utf8"
)

func TestParseStandardKnownBodies(t *testing.T) {
	t.Run("IEC with part numbers", func(t *testing.T) {
		p := ParseStandard("IEC 60068-2-1")
		if p.Body != "IEC" {
			t.Fatalf("expected body IEC, got %q", p.Body)
		}
		if p.Code != "IEC 60068-2-1" {
			t.Fatalf("expected code IEC 60068-2-1, got %q", p.Code)
		}
		if p.FullCode != "IEC 60068-2-1" {
			t.Fatalf("expected full code preserved, got %q", p.FullCode)
		}
	})

	t.Run("lower case input parses the same", func(t *testing.T) {
		p := ParseStandard("iec 60335-1")
		if p.Body != "IEC" {
			t.Fatalf("expected body IEC, got %q", p.Body)
		}
		if p.Code != "IEC 60335-1" {
			t.Fatalf("expected code IEC 60335-1, got %q", p.Code)
		}
		if p.FullCode != "iec 60335-1" {
			t.Fatalf("full code must keep the original casing, got %q", p.FullCode)
		}
	})

	t.Run("space separated parts collapse to dashes", func(t *testing.T) {
		p := ParseStandard("ISO 6892 1")
		if p.Code != "ISO 6892-1" {
			t.Fatalf("expected code ISO 6892-1, got %q", p.Code)
		}
	})

	t.Run("CISPR with dash separator", func(t *testing.T) {
		p := ParseStandard("CISPR-14")
		if p.Body != "CISPR" {
			t.Fatalf("expected body CISPR, got %q", p.Body)
		}
		if p.Code != "CISPR 14" {
			t.Fatalf("expected code CISPR 14, got %q", p.Code)
		}
	})

	t.Run("IS standard with year suffix", func(t *testing.T) {
		p := ParseStandard("IS 302:1979")
		if p.Body != "IS" {
			t.Fatalf("expected body IS, got %q", p.Body)
		}
		if p.Year == nil || *p.Year != "1979" {
			t.Fatalf("expected year 1979, got %v", p.Year)
		}
	})
}

func TestParseStandardYear(t *testing.T) {
	t.Run("first four-digit run wins", func(t *testing.T) {
		// The part number itself supplies the first four digits here.
		p := ParseStandard("IEC 60068-2-78:2012")
		if p.Year == nil || *p.Year != "6006" {
			t.Fatalf("expected year 6006, got %v", p.Year)
		}
	})

	t.Run("no four-digit run means no year", func(t *testing.T) {
		p := ParseStandard("IS 302")
		if p.Year != nil {
			t.Fatalf("expected nil year, got %q", *p.Year)
		}
	})
}

func TestParseStandardFallback(t *testing.T) {
	t.Run("unrecognized body keeps the cleaned string", func(t *testing.T) {
		p := ParseStandard("ASTM  D2303")
		if p.Body != SentinelBody {
			t.Fatalf("expected body %q, got %q", SentinelBody, p.Body)
		}
		if p.Code != "ASTM D2303" {
			t.Fatalf("expected collapsed code, got %q", p.Code)
		}
	})

	t.Run("long code is truncated", func(t *testing.T) {
		long := "Method "
		for len(long) <= maxCodeLen {
			long += "x"
		}
		p := ParseStandard(long)
		if len(p.Code) != maxCodeLen {
			t.Fatalf("expected code truncated to %d, got %d", maxCodeLen, len(p.Code))
		}
		if p.FullCode != long {
			t.Fatal("full code must never be truncated")
		}
	})

	t.Run("multi-byte code is truncated on rune boundaries", func(t *testing.T) {
		long := "Méthode "
		for utf8.RuneCountInString(long) <= maxCodeLen {
			long += "é"
		}
		p := ParseStandard(long)
		if got := utf8.RuneCountInString(p.Code); got != maxCodeLen {
			t.Fatalf("expected code truncated to %d runes, got %d", maxCodeLen, got)
		}
		if !utf8.ValidString(p.Code) {
			t.Fatalf("truncated code is not valid UTF-8: %q", p.Code)
		}
		if p.FullCode != long {
			t.Fatal("full code must never be truncated")
		}
	})
}

func TestParseStandardBlank(t *testing.T) {
	for _, raw := range []string{"", "  ", "nan", "NaN", "none", "None"} {
		p := ParseStandard(raw)
		if p.FullCode != SentinelFullCode {
			t.Fatalf("blank input %q should parse to the sentinel, got %q", raw, p.FullCode)
		}
		if p.Body != SentinelBody || p.Code != SentinelCode {
			t.Fatalf("blank input %q should carry sentinel fields, got %+v", raw, p)
		}
		if p.Year != nil {
			t.Fatalf("blank input %q should have no year", raw)
		}
	}
}
