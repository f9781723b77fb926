package format

import "testing"

func TestAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1 000"},
		{36000, "36 000"},
		{1250000, "1 250 000"},
		{1250000.49, "1 250 000"},
		{1249999.5, "1 250 000"},
		{-4500, "-4 500"},
	}
	for _, c := range cases {
		if got := Amount(c.in); got != c.want {
			t.Errorf("Amount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestChunk(t *testing.T) {
	items := make([]int, 32)
	for i := range items {
		items[i] = i
	}
	chunks := Chunk(items, ReportChunkSize)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, want := range []int{15, 15, 2} {
		if len(chunks[i]) != want {
			t.Errorf("chunk %d has %d items, want %d", i, len(chunks[i]), want)
		}
	}
	if chunks[2][1] != 31 {
		t.Errorf("last element = %d, want 31", chunks[2][1])
	}

	if got := Chunk([]int{1, 2, 3}, ReportChunkSize); len(got) != 1 || len(got[0]) != 3 {
		t.Errorf("short input should yield single chunk, got %v", got)
	}
	if got := Chunk([]int(nil), ReportChunkSize); got != nil {
		t.Errorf("nil input should yield nil, got %v", got)
	}
}
