package similarity

import (
	"strings"
	"testing"
)

func TestPreprocess_StripsBoilerplate(t *testing.T) {
	text := `IN THE SENATE OF THE UNITED STATES
June 8, 2021;
Be it enacted by the Senate and House of Representatives of the United States of America in Congress assembled:
Section 1.2 This Act may be cited as the Example Act.`

	got := Preprocess(text)

	if strings.Contains(got, "senate of the united states") {
		t.Errorf("chamber header not stripped: %q", got)
	}
	if strings.Contains(got, "be it enacted") {
		t.Errorf("enacting formula not stripped: %q", got)
	}
	if strings.Contains(got, "section 1.2") {
		t.Errorf("section number not stripped: %q", got)
	}
	if !strings.Contains(got, "this act may be cited as the example act.") {
		t.Errorf("substantive text lost: %q", got)
	}
}

func TestPreprocess_LowercasesAndCollapsesWhitespace(t *testing.T) {
	got := Preprocess("The   QUICK\n\tBrown  Fox")
	want := "the quick brown fox"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreprocess_Empty(t *testing.T) {
	if got := Preprocess(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := Preprocess("   \n\t  "); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
