package wkhtmltopdf

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestOptions_Set
// ---------------------------------------------------------------------------

func TestOptions_Set(t *testing.T) {
	t.Parallel()

	t.Run("appends in insertion order", func(t *testing.T) {
		t.Parallel()

		o := &Options{}
		mustSet(t, o, "b", Bool(true))
		mustSet(t, o, "a", Bool(true))
		if o.Flags[0].Name != "b" || o.Flags[1].Name != "a" {
			t.Errorf("Flags = %+v, want insertion order b, a", o.Flags)
		}
	})

	t.Run("replaces existing value in place", func(t *testing.T) {
		t.Parallel()

		o := &Options{}
		mustSet(t, o, "dpi", Int(96))
		mustSet(t, o, "grayscale", Bool(true))
		mustSet(t, o, "dpi", Int(300))

		if len(o.Flags) != 2 {
			t.Fatalf("len(Flags) = %d, want 2", len(o.Flags))
		}
		if got := o.Flags[0].Value.String(); got != "300" {
			t.Errorf("dpi = %q, want %q", got, "300")
		}
	})

	t.Run("rejects reserved names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"output", "ignore", "rawArgs", ""} {
			o := &Options{}
			if err := o.Set(name, String("x")); !errors.Is(err, ErrReservedOption) {
				t.Errorf("Set(%q) error = %v, want ErrReservedOption", name, err)
			}
			if len(o.Flags) != 0 {
				t.Errorf("Set(%q) stored a flag", name)
			}
		}
	})
}

func TestOptions_Get(t *testing.T) {
	t.Parallel()

	o := &Options{}
	mustSet(t, o, "pageSize", String("A4"))

	if v, ok := o.Get("pageSize"); !ok || v.String() != "A4" {
		t.Errorf("Get(pageSize) = %v, %v; want A4, true", v, ok)
	}
	if _, ok := o.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestOptions_Clone
// ---------------------------------------------------------------------------

func TestOptions_Clone(t *testing.T) {
	t.Parallel()

	orig := &Options{Output: "a.pdf", RawArgs: []string{"-q"}, Ignore: []IgnoreRule{IgnoreString("w")}}
	mustSet(t, orig, "customHeader", Strings("Accept", "text/html"))

	c := orig.Clone()
	c.Flags[0].Value.list[0] = "changed"
	c.RawArgs[0] = "changed"
	c.Output = "b.pdf"

	if orig.Flags[0].Value.list[0] != "Accept" {
		t.Error("Clone() shares the sequence backing array")
	}
	if orig.RawArgs[0] != "-q" {
		t.Error("Clone() shares RawArgs")
	}
	if orig.Output != "a.pdf" {
		t.Error("Clone() shares Output")
	}
}

func TestOptions_CloneNil(t *testing.T) {
	t.Parallel()

	var o *Options
	if c := o.Clone(); c == nil {
		t.Error("Clone() of nil returned nil")
	}
}

// ---------------------------------------------------------------------------
// TestValue
// ---------------------------------------------------------------------------

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"string", String("A4"), "A4"},
		{"int", Int(-3), "-3"},
		{"float", Float(0.75), "0.75"},
		{"sequence", Strings("a", "b"), `["a" "b"]`},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValue_IsFalse(t *testing.T) {
	t.Parallel()

	if !Bool(false).IsFalse() {
		t.Error("Bool(false).IsFalse() = false")
	}
	for _, v := range []Value{Bool(true), String(""), String("false"), Int(0), Strings()} {
		if v.IsFalse() {
			t.Errorf("%v.IsFalse() = true, only boolean false suppresses a flag", v)
		}
	}
}

func TestStrings_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []string{"a"}
	v := Strings(in...)
	in[0] = "b"
	if v.list[0] != "a" {
		t.Error("Strings() aliases the caller's slice")
	}
}
