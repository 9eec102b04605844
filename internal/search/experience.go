package search

// Bucket is a named inclusive range of years of experience. The terminal
// bucket is open above Min.
type Bucket struct {
	Code  string
	Label string
	Min   int
	Max   int
	Open  bool
}

// Buckets lists the experience buckets in display order. 20 belongs to both
// "16-20" and "20+".
var Buckets = []Bucket{
	{Code: "0-2", Label: "0-2 years", Min: 0, Max: 2},
	{Code: "3-5", Label: "3-5 years", Min: 3, Max: 5},
	{Code: "6-10", Label: "6-10 years", Min: 6, Max: 10},
	{Code: "11-15", Label: "11-15 years", Min: 11, Max: 15},
	{Code: "16-20", Label: "16-20 years", Min: 16, Max: 20},
	{Code: "20+", Label: "20+ years", Min: 20, Open: true},
}

// LookupBucket finds a bucket by code. The empty code and unknown codes
// report false.
func LookupBucket(code string) (Bucket, bool) {
	for _, b := range Buckets {
		if b.Code == code {
			return b, true
		}
	}
	return Bucket{}, false
}

// Contains reports whether years falls inside the bucket.
func (b Bucket) Contains(years int) bool {
	if years < b.Min {
		return false
	}
	return b.Open || years <= b.Max
}

// BucketFor assigns years to the first bucket containing it, which makes the
// overlapping table a partition for distribution counts. Negative values land
// in the first bucket.
func BucketFor(years int) Bucket {
	for _, b := range Buckets {
		if b.Contains(years) {
			return b
		}
	}
	return Buckets[0]
}
