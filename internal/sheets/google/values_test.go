package google

import "testing"

func TestToStrings(t *testing.T) {
	got := toStrings([]any{" 001 ", 42, 15.5, ""})
	want := []string{"001", "42", "15.5", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColLetter(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{4, "D"},
		{26, "Z"},
		{0, "A"},
		{99, "Z"},
	}
	for _, tc := range cases {
		if got := colLetter(tc.n); got != tc.want {
			t.Fatalf("colLetter(%d): got %q, want %q", tc.n, got, tc.want)
		}
	}
}
