package quantile

import "testing"

func TestSamplesCompressorMergesUnderBudget(t *testing.T) {
	c := newSamplesCompressor[int](4)
	for _, s := range []sample[int]{
		{value: 0, g: 1, delta: 0},
		{value: 2, g: 2, delta: 1},
		{value: 4, g: 2, delta: 0},
		{value: 6, g: 2, delta: 0},
		{value: 9, g: 3, delta: 0},
	} {
		c.push(s)
	}
	tree := c.finish()
	got := tree.iterAll()
	want := []sample[int]{
		{value: 0, g: 1, delta: 0},
		{value: 4, g: 4, delta: 0},
		{value: 6, g: 2, delta: 0},
		{value: 9, g: 3, delta: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSamplesCompressorNeverMergesFirstSample(t *testing.T) {
	c := newSamplesCompressor[int](1000)
	c.push(sample[int]{value: 0, g: 1, delta: 0})
	c.push(sample[int]{value: 1, g: 1, delta: 0})
	c.push(sample[int]{value: 2, g: 1, delta: 0})
	tree := c.finish()
	got := tree.iterAll()
	want := []sample[int]{
		{value: 0, g: 1, delta: 0},
		{value: 2, g: 2, delta: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
