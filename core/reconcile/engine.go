package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Reconcile loads both sides concurrently and compares them.
func Reconcile(ctx context.Context, expected, actual Loader) (*Report, error) {
	var expectedIndex, actualIndex Index

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := expected(gctx)
		if err != nil {
			return fmt.Errorf("failed to load expected index: %w", err)
		}
		expectedIndex = idx
		return nil
	})
	g.Go(func() error {
		idx, err := actual(gctx)
		if err != nil {
			return fmt.Errorf("failed to load actual index: %w", err)
		}
		actualIndex = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Diff(expectedIndex, actualIndex), nil
}

// Diff compares two indices key by key.
func Diff(expected, actual Index) *Report {
	union := make(map[string]struct{}, len(expected)+len(actual))
	for key := range expected {
		union[key] = struct{}{}
	}
	for key := range actual {
		union[key] = struct{}{}
	}

	report := &Report{Results: make([]Result, 0, len(union))}
	for key := range union {
		want, inExpected := expected[key]
		got, inActual := actual[key]

		result := Result{
			Key:             key,
			ExpectedPresent: inExpected,
			ActualPresent:   inActual,
		}
		if inExpected && inActual {
			result.Mismatch = !Equal(want, got)
		}
		report.Results = append(report.Results, result)
	}

	// Sort results by key for deterministic output
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Key < report.Results[j].Key
	})

	report.Summary = summarize(report.Results)
	return report
}

// Equal reports whether a and b encode the same JSON value. Object key order and
// insignificant whitespace are ignored; invalid documents are compared byte for byte.
func Equal(a, b json.RawMessage) bool {
	if bytes.Equal(a, b) {
		return true
	}

	va, err := decodeExact(a)
	if err != nil {
		return false
	}
	vb, err := decodeExact(b)
	if err != nil {
		return false
	}
	return equalValues(va, vb)
}

// decodeExact decodes raw keeping numbers as their literal text.
func decodeExact(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

// equalValues compares decoded documents. Numbers compare by exact value, so
// 1.0 equals 1 and integers beyond float64 precision stay distinct.
func equalValues(a, b any) bool {
	switch va := a.(type) {
	case json.Number:
		vb, ok := b.(json.Number)
		if !ok {
			return false
		}
		ra, okA := new(big.Rat).SetString(va.String())
		rb, okB := new(big.Rat).SetString(vb.String())
		if !okA || !okB {
			return va == vb
		}
		return ra.Cmp(rb) == 0
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, x := range va {
			y, ok := vb[k]
			if !ok || !equalValues(x, y) {
				return false
			}
		}
		return true
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !equalValues(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case !r.ActualPresent:
			s.MissingActual++
		case !r.ExpectedPresent:
			s.MissingExpected++
		case r.Mismatch:
			s.Mismatches++
		default:
			s.InSync++
		}
	}
	return s
}
