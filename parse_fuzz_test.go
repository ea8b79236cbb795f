//go:build go1.18
// +build go1.18

package arith_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzParse(f *testing.F) {
	f.Add("1+2*3")
	f.Add("-2^3^4")
	f.Add("1^-2!^3")
	f.Add("(.5+1.)!")
	f.Add("1" + strings.Repeat("0", 400) + "+1")
	f.Add("1" + strings.Repeat("0", 308))
	f.Fuzz(func(t *testing.T, s string) {
		n, err := arith.ParseString(s)
		if err != nil {
			return
		}
		// Anything that parses must render to something that parses to the
		// same rendering.
		r := n.String()
		m, err := arith.ParseString(r)
		if err != nil {
			t.Fatalf("%q renders as %q, which fails to parse: %v", s, r, err)
		}
		if q := m.String(); q != r {
			t.Fatalf("%q renders as %q, which renders as %q", s, r, q)
		}
	})
}
