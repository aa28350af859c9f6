package display

import (
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestLines(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		exp   []string
	}{
		"fits":          {text: "hello", width: 10, exp: []string{"hello"}},
		"wraps words":   {text: "You cannot walk here.", width: 12, exp: []string{"You cannot", "walk here."}},
		"keeps breaks":  {text: "one\ntwo", width: 10, exp: []string{"one", "two"}},
		"default width": {text: "short", width: 0, exp: []string{"short"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Lines(tt.text, tt.width)
			if !slices.Equal(got, tt.exp) {
				t.Errorf("lines %q, expected %q", got, tt.exp)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	testutil.AssertEqual(t, "wrapped", Wrap("aaa bbb", 3), "aaa\nbbb")
}
