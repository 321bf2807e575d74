package options

import (
	"testing"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Fatalf("%q: expected true, got %v %v", in, v, err)
		}
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Fatalf("%q: expected false, got %v %v", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatValidate(t *testing.T) {
	o := &FormatOptions{Output: "YAML"}
	if err := o.Validate(); err != nil || o.Output != "yaml" {
		t.Fatalf("unexpected %q %v", o.Output, err)
	}
	o.Output = "xml"
	if err := o.Validate(); err == nil {
		t.Fatal("expected error")
	}
}
