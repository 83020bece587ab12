package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestDiff(t *testing.T) {
	expected := Index{
		"a": raw(`{"x":1,"y":[1,2]}`),
		"b": raw(`"same"`),
		"c": raw(`1`),
		"d": raw(`true`),
	}
	actual := Index{
		"a": raw(`{ "y": [1, 2], "x": 1 }`),
		"b": raw(`"same"`),
		"c": raw(`2`),
		"e": raw(`null`),
	}

	report := Diff(expected, actual)

	require.Len(t, report.Results, 5)
	keys := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys)

	assert.True(t, report.Results[0].InSync())
	assert.True(t, report.Results[1].InSync())
	assert.True(t, report.Results[2].Mismatch)
	assert.Equal(t, Result{Key: "d", ExpectedPresent: true}, report.Results[3])
	assert.Equal(t, Result{Key: "e", ActualPresent: true}, report.Results[4])

	assert.Equal(t, Summary{Total: 5, InSync: 2, MissingActual: 1, MissingExpected: 1, Mismatches: 1}, report.Summary)
	assert.False(t, report.Summary.Clean())
}

func TestDiff_Empty(t *testing.T) {
	report := Diff(nil, Index{})
	assert.Empty(t, report.Results)
	assert.True(t, report.Summary.Clean())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"Identical", `{"a":1}`, `{"a":1}`, true},
		{"KeyOrder", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"Whitespace", `[1, 2]`, `[1,2]`, true},
		{"NumberForm", `1.0`, `1`, true},
		{"ExponentForm", `{"n":1e3}`, `{"n":1000}`, true},
		{"LargeIntegers", `{"id":9007199254740993}`, `{"id":9007199254740992}`, false},
		{"LargeIntegersEqual", `{"id":9007199254740993}`, `{"id": 9007199254740993}`, true},
		{"NestedLargeInteger", `[{"id":18446744073709551617}]`, `[{"id":18446744073709551616}]`, false},
		{"MissingField", `{"a":1}`, `{"a":1,"b":null}`, false},
		{"NullVsFalse", `null`, `false`, false},
		{"DifferentValue", `{"a":1}`, `{"a":2}`, false},
		{"DifferentType", `"1"`, `1`, false},
		{"ArrayOrder", `[1,2]`, `[2,1]`, false},
		{"InvalidBoth", `{`, `{`, true},
		{"InvalidOne", `{`, `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(raw(tt.a), raw(tt.b)))
		})
	}
}

func TestDiff_LargeIntegerMismatch(t *testing.T) {
	report := Diff(
		Index{"k": raw(`{"id":9007199254740993}`)},
		Index{"k": raw(`{"id":9007199254740992}`)},
	)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Mismatch)
	assert.False(t, report.Summary.Clean())
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	expected := func(context.Context) (Index, error) { return Index{"a": raw(`1`)}, nil }
	actual := func(context.Context) (Index, error) { return Index{"a": raw(`1`)}, nil }

	report, err := Reconcile(ctx, expected, actual)
	require.NoError(t, err)
	assert.True(t, report.Summary.Clean())
	assert.Equal(t, 1, report.Summary.InSync)
}

func TestReconcile_ErrorHandling(t *testing.T) {
	ok := func(context.Context) (Index, error) { return Index{}, nil }
	fail := func(context.Context) (Index, error) { return nil, fmt.Errorf("list failed") }

	tests := []struct {
		name      string
		expected  Loader
		actual    Loader
		expectErr string
	}{
		{"Expected load error", fail, ok, "failed to load expected index: list failed"},
		{"Actual load error", ok, fail, "failed to load actual index: list failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Reconcile(context.Background(), tt.expected, tt.actual)
			assert.Nil(t, report)
			assert.EqualError(t, err, tt.expectErr)
		})
	}
}
