package source

import "testing"

func TestInterner_RoundTrip(t *testing.T) {
	in := NewInterner()

	a := in.Intern("receiver")
	b := in.Intern("err")
	if a == b {
		t.Fatal("distinct strings must get distinct ids")
	}
	if again := in.Intern("receiver"); again != a {
		t.Errorf("re-interning returned %d, want %d", again, a)
	}

	rebuilt := FromTable(in.Table())
	if got, ok := rebuilt.Lookup(b); !ok || got != "err" {
		t.Errorf("rebuilt Lookup(%d) = %q, %v", b, got, ok)
	}
	if rebuilt.Intern("err") != b {
		t.Error("rebuilt interner must keep existing ids")
	}
}

func TestInterner_EmptyString(t *testing.T) {
	in := NewInterner()
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("Lookup(NoStringID) = %q, %v", s, ok)
	}
	if _, ok := in.Lookup(42); ok {
		t.Error("unknown id must not resolve")
	}
}
