package reports

// Bucket is an additive accumulator for one aggregation key.
type Bucket[K comparable] struct {
	Key        K
	TotalMinor int64
	Count      int64
}

// Accumulator groups minor-unit amounts by key while tracking a grand total,
// grand count, and the largest single-bucket total (heatmap scaling). Every
// expected key gets a bucket up front so zero-activity buckets are reported
// as explicit zeros rather than missing entries.
type Accumulator[K comparable] struct {
	order      []K
	index      map[K]*Bucket[K]
	grandMinor int64
	grandCount int64
	maxMinor   int64
}

// NewAccumulator seeds one empty bucket per expected key, preserving order.
func NewAccumulator[K comparable](expected []K) *Accumulator[K] {
	a := &Accumulator[K]{index: make(map[K]*Bucket[K], len(expected))}
	for _, key := range expected {
		a.ensure(key)
	}
	return a
}

// Add accumulates one record into the keyed bucket. Keys outside the
// expected set are admitted and appended after the seeded ones; buckets are
// never decremented.
func (a *Accumulator[K]) Add(key K, amountMinor int64) {
	bucket := a.ensure(key)
	bucket.TotalMinor += amountMinor
	bucket.Count++
	a.grandMinor += amountMinor
	a.grandCount++
	if bucket.TotalMinor > a.maxMinor {
		a.maxMinor = bucket.TotalMinor
	}
}

func (a *Accumulator[K]) ensure(key K) *Bucket[K] {
	if bucket, ok := a.index[key]; ok {
		return bucket
	}
	bucket := &Bucket[K]{Key: key}
	a.index[key] = bucket
	a.order = append(a.order, key)
	return bucket
}

// Buckets returns every bucket in insertion order, seeded keys first.
func (a *Accumulator[K]) Buckets() []Bucket[K] {
	out := make([]Bucket[K], 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.index[key])
	}
	return out
}

// Get returns the bucket for key, if present.
func (a *Accumulator[K]) Get(key K) (Bucket[K], bool) {
	bucket, ok := a.index[key]
	if !ok {
		return Bucket[K]{}, false
	}
	return *bucket, true
}

// GrandTotalMinor is the sum over every bucket.
func (a *Accumulator[K]) GrandTotalMinor() int64 { return a.grandMinor }

// GrandCount is the record count over every bucket.
func (a *Accumulator[K]) GrandCount() int64 { return a.grandCount }

// MaxBucketMinor is the largest single-bucket total seen so far.
func (a *Accumulator[K]) MaxBucketMinor() int64 { return a.maxMinor }

// HourKeys returns the full dense hour-of-day key set.
func HourKeys() []int {
	keys := make([]int, 24)
	for h := range keys {
		keys[h] = h
	}
	return keys
}
