package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every end-to-end scenario from spec §8 through the full
// pipeline and snapshots either the emitted IR text or, for the negative
// scenarios, the rendered diagnostic — the same fixture-table-plus-go-snaps
// shape as go-dws/internal/interp/fixture_test.go.
func TestFixtures(t *testing.T) {
	cases := []struct {
		name         string
		file         string
		expectErrors bool
	}{
		{name: "Addition", file: "addition.mc"},
		{name: "FactorialIterative", file: "factorial.mc"},
		{name: "MixedWidening", file: "mixed_widening.mc"},
		{name: "ConditionalNarrowing", file: "conditional_narrowing.mc"},
		{name: "TwoDimensionalGlobalArray", file: "array_2d.mc"},
		{name: "ShortCircuitSideEffect", file: "short_circuit.mc"},
		{name: "UndeclaredName", file: "undeclared_name.mc", expectErrors: true},
		{name: "NarrowingAssignment", file: "narrowing_assignment.mc", expectErrors: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", tc.file))
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}

			mod, errs := Compile(src, tc.file)

			if tc.expectErrors {
				if len(errs) == 0 {
					t.Fatalf("expected a diagnostic, got none")
				}
				snaps.MatchSnapshot(t, fmt.Sprintf("%s_error", tc.name), errs[0].Error())
				return
			}

			if len(errs) != 0 {
				t.Fatalf("unexpected diagnostic(s): %v", errs)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_ir", tc.name), mod.String())
		})
	}
}
