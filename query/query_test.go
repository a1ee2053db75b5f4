package query

import (
	"testing"
)

func TestCanonicalizeExample(t *testing.T) {
	overrides := map[string]string{
		"Foo": "1",
		"Bar": "2 3",
	}

	if e, a := "Bar=2%203&Foo=1", NewParameterSet().Canonicalize(overrides); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestCanonicalizeInsertionOrderIndependent(t *testing.T) {
	first := NewParameterSet()
	first.Set("Action", String("ListQueues"))
	first.Set("Version", String("2012-11-05"))
	first.Set("MaxResults", String("10"))

	second := NewParameterSet()
	second.Set("MaxResults", String("10"))
	second.Set("Version", String("2012-11-05"))
	second.Set("Action", String("ListQueues"))

	if e, a := first.Canonicalize(nil), second.Canonicalize(nil); e != a {
		t.Errorf("expect identical output, got %q and %q", e, a)
	}
}

func TestCanonicalizeSortsByFullPair(t *testing.T) {
	p := NewParameterSet()
	p.Set("a", String("z"))
	p.Set("a0", String("a"))

	// '0' sorts before '=', so "a0=a" precedes "a=z".
	if e, a := "a0=a&a=z", p.Canonicalize(nil); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestCanonicalizeOverridesWin(t *testing.T) {
	p := NewParameterSet()
	p.Set("Action", String("ListQueues"))
	p.Set("Version", String("2012-11-05"))

	got := p.Canonicalize(map[string]string{"Action": "GetQueueUrl"})
	if e, a := "Action=GetQueueUrl&Version=2012-11-05", got; e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestCanonicalizeResolvesProviders(t *testing.T) {
	calls := 0
	p := NewParameterSet()
	p.Set("Timestamp", Provider(func() string {
		calls++
		return "2026-01-02T03:04:05Z"
	}))

	if e, a := "Timestamp=2026-01-02T03%3A04%3A05Z", p.Canonicalize(nil); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
	if e, a := 1, calls; e != a {
		t.Errorf("expect %v provider call, got %v", e, a)
	}

	p.Canonicalize(nil)
	if e, a := 2, calls; e != a {
		t.Errorf("expect provider re-resolved per canonicalization, got %v calls", a)
	}
}

func TestCanonicalizeSetReplaces(t *testing.T) {
	p := NewParameterSet()
	p.Set("Action", String("First"))
	p.Set("Action", String("Second"))

	if e, a := "Action=Second", p.Canonicalize(nil); e != a {
		t.Errorf("expect %q, got %q", e, a)
	}
}

func TestCanonicalizeEmpty(t *testing.T) {
	if e, a := "", NewParameterSet().Canonicalize(nil); e != a {
		t.Errorf("expect empty string, got %q", a)
	}

	var p *ParameterSet
	if e, a := "", p.Canonicalize(map[string]string{}); e != a {
		t.Errorf("expect empty string from nil set, got %q", a)
	}
}
