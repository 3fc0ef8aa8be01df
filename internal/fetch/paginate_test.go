package fetch

import (
	"strings"
	"testing"
)

func TestPaginateBeyondEnd(t *testing.T) {
	for _, maxLength := range []int{1, 4, 5000} {
		out := Paginate("0123456789", 10, maxLength).Render()
		if out != NoMoreContent {
			t.Fatalf("maxLength=%d: expected sentinel, got %q", maxLength, out)
		}
	}
	if out := Paginate("", 0, 100).Render(); out != NoMoreContent {
		t.Fatalf("empty text: expected sentinel, got %q", out)
	}
}

func TestPaginateSliceExact(t *testing.T) {
	text := "abcdefghij"
	v := Paginate(text, 3, 4)
	if v.Slice != "defg" {
		t.Fatalf("unexpected slice %q", v.Slice)
	}
	if v.NextStart != 7 {
		t.Fatalf("unexpected next start %d", v.NextStart)
	}
	v = Paginate(text, 8, 100)
	if v.Slice != "ij" {
		t.Fatalf("expected clamped slice, got %q", v.Slice)
	}
	if v.HasMore {
		t.Fatalf("no content should remain")
	}
}

func TestPaginateTruncationNotice(t *testing.T) {
	out := Paginate("0123456789", 0, 4).Render()
	if !strings.HasPrefix(out, "0123") {
		t.Fatalf("unexpected slice in %q", out)
	}
	if !strings.Contains(out, "40%") {
		t.Fatalf("expected 40%% shown in %q", out)
	}
	if !strings.Contains(out, "start_index=4") {
		t.Fatalf("expected resume cursor in %q", out)
	}
}

func TestPaginateContinuationReachesEnd(t *testing.T) {
	out := Paginate("0123456789", 8, 4).Render()
	if !strings.HasPrefix(out, "89") {
		t.Fatalf("unexpected slice in %q", out)
	}
	if strings.Contains(out, "start_index=") {
		t.Fatalf("unexpected resume cursor in %q", out)
	}
	if !strings.Contains(out, "100%") {
		t.Fatalf("expected 100%% shown in %q", out)
	}
}

func TestPaginateFirstCallFullyConsumed(t *testing.T) {
	out := Paginate("hello", 0, 100).Render()
	if out != "hello" {
		t.Fatalf("expected bare slice, got %q", out)
	}
}

func TestPaginateIdempotent(t *testing.T) {
	a := Paginate("0123456789", 2, 3).Render()
	b := Paginate("0123456789", 2, 3).Render()
	if a != b {
		t.Fatalf("pagination is not idempotent: %q vs %q", a, b)
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40)
	var rebuilt strings.Builder
	start := 0
	for {
		v := Paginate(text, start, 333)
		if v.Slice == "" {
			break
		}
		rebuilt.WriteString(v.Slice)
		if !v.HasMore {
			break
		}
		start = v.NextStart
	}
	if rebuilt.String() != text {
		t.Fatalf("round trip did not reconstruct the text (%d vs %d chars)", rebuilt.Len(), len(text))
	}
}
