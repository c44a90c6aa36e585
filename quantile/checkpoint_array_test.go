package quantile

import "testing"

func fullArray(t *testing.T) checkpointArray[int] {
	t.Helper()
	a := newCheckpointArray[int]()
	for i := 0; i < nodeCapacity; i++ {
		a.items = append(a.items, Checkpoint[int]{sample: i * 2, minGap: 1, maxGap: 1})
	}
	return a
}

func TestCheckpointArrayInsertNotFull(t *testing.T) {
	a := newCheckpointArray[int]()
	a.items = append(a.items, Checkpoint[int]{sample: 0}, Checkpoint[int]{sample: 10})
	split := a.insertCheckpoint(Checkpoint[int]{sample: 5}, 1)
	if !split.done {
		t.Fatalf("expected done, got split")
	}
	if a.len() != 3 || a.items[1].sample != 5 {
		t.Fatalf("got items=%+v", a.items)
	}
}

func TestCheckpointArraySplitLeftOfMid(t *testing.T) {
	a := fullArray(t)
	split := a.insertCheckpoint(Checkpoint[int]{sample: 3, minGap: 1, maxGap: 1}, 2)
	if split.done {
		t.Fatalf("expected split on full array")
	}
	if a.len() != nodeCapacity/2 || split.right.len() != nodeCapacity/2 {
		t.Fatalf("got left=%d right=%d, want %d each", a.len(), split.right.len(), nodeCapacity/2)
	}
	if a.items[2].sample != 3 {
		t.Fatalf("expected inserted value at pos 2 of left half, got %+v", a.items)
	}
	if split.median.sample != 14 {
		// Original item at index 7 (value 14) is popped off as median.
		t.Fatalf("got median=%+v, want sample=14", split.median)
	}
}

func TestCheckpointArraySplitAtMid(t *testing.T) {
	a := fullArray(t)
	incoming := Checkpoint[int]{sample: 15, minGap: 1, maxGap: 1}
	split := a.insertCheckpoint(incoming, nodeCapacity/2)
	if split.done {
		t.Fatalf("expected split")
	}
	if a.len() != nodeCapacity/2 || split.right.len() != nodeCapacity/2 {
		t.Fatalf("got left=%d right=%d", a.len(), split.right.len())
	}
	if split.median.sample != 15 {
		t.Fatalf("expected the incoming checkpoint to become the median, got %+v", split.median)
	}
}

func TestCheckpointArraySplitRightOfMid(t *testing.T) {
	a := fullArray(t)
	split := a.insertCheckpoint(Checkpoint[int]{sample: 25, minGap: 1, maxGap: 1}, 13)
	if split.done {
		t.Fatalf("expected split")
	}
	if a.len() != nodeCapacity/2 || split.right.len() != nodeCapacity/2 {
		t.Fatalf("got left=%d right=%d", a.len(), split.right.len())
	}
	if split.median.sample != 16 {
		t.Fatalf("got median=%+v, want sample=16", split.median)
	}
	found := false
	for i := 0; i < split.right.len(); i++ {
		if split.right.at(i).sample == 25 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected inserted value in right half, got %+v", split.right.items)
	}
}

func TestFindInsertionPos(t *testing.T) {
	a := newCheckpointArray[int]()
	a.items = append(a.items, Checkpoint[int]{sample: 2}, Checkpoint[int]{sample: 8})
	following := Checkpoint[int]{sample: 100}

	pos, ref := a.findInsertionPos(5, &following)
	if pos != 1 || ref.sample != 8 {
		t.Fatalf("got pos=%d ref=%+v", pos, ref)
	}

	pos, ref = a.findInsertionPos(50, &following)
	if pos != 2 || ref.sample != 100 {
		t.Fatalf("expected caller-supplied following when v exceeds all locals, got pos=%d ref=%+v", pos, ref)
	}
}
