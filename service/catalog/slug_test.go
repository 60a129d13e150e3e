package catalog

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Laptop HP 15", "laptop-hp-15"},
		{"  Múltiples   espacios  ", "m-ltiples-espacios"},
		{"UPPER-case_mix 42", "upper-case-mix-42"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Laptop HP 15", "Té Verde!", "a  b  c"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize(Sanitize(%q)) = %q, want %q", in, twice, once)
		}
	}
}
