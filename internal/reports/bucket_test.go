package reports

import "testing"

func TestAccumulatorSeedsExpectedKeys(t *testing.T) {
	acc := NewAccumulator[string]([]string{"a", "b", "c"})
	acc.Add("b", 500)

	buckets := acc.Buckets()
	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want 3", len(buckets))
	}
	if buckets[0].Key != "a" || buckets[0].TotalMinor != 0 || buckets[0].Count != 0 {
		t.Errorf("seeded bucket a = %+v, want explicit zeros", buckets[0])
	}
	if buckets[1].TotalMinor != 500 || buckets[1].Count != 1 {
		t.Errorf("bucket b = %+v, want total 500 count 1", buckets[1])
	}
}

func TestAccumulatorAdmitsUnexpectedKeys(t *testing.T) {
	acc := NewAccumulator[string]([]string{"a"})
	acc.Add("z", 100)

	buckets := acc.Buckets()
	if len(buckets) != 2 || buckets[1].Key != "z" {
		t.Fatalf("buckets = %+v, want z appended after seeded keys", buckets)
	}
}

func TestAccumulatorGrandTotalsAndMax(t *testing.T) {
	acc := NewAccumulator[int](HourKeys())
	acc.Add(9, 300)
	acc.Add(9, 200)
	acc.Add(14, 400)

	if got := acc.GrandTotalMinor(); got != 900 {
		t.Errorf("grand total = %d, want 900", got)
	}
	if got := acc.GrandCount(); got != 3 {
		t.Errorf("grand count = %d, want 3", got)
	}
	if got := acc.MaxBucketMinor(); got != 500 {
		t.Errorf("max bucket = %d, want 500", got)
	}

	// The grand total always equals the sum over every bucket.
	var sum int64
	for _, bucket := range acc.Buckets() {
		sum += bucket.TotalMinor
	}
	if sum != acc.GrandTotalMinor() {
		t.Errorf("bucket sum = %d, grand total = %d", sum, acc.GrandTotalMinor())
	}
}

func TestHourKeysAreDense(t *testing.T) {
	keys := HourKeys()
	if len(keys) != 24 {
		t.Fatalf("len = %d, want 24", len(keys))
	}
	for hour, key := range keys {
		if key != hour {
			t.Errorf("keys[%d] = %d", hour, key)
		}
	}
}
