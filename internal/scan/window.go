package scan

import (
	"iter"
	"time"
)

// TakeWhileRecent collects the prefix of a sequence whose timestamps are not
// older than since. The input must be sorted newest-first: iteration stops at
// the first element older than since, which is what keeps a scan from paging
// through a repository's entire history. If the input is not sorted, items
// inside the window can be dropped silently.
//
// A fetch error surfaced through the sequence aborts the collection.
func TakeWhileRecent[T any](seq iter.Seq2[T, error], at func(T) time.Time, since time.Time) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		if at(item).Before(since) {
			break
		}
		items = append(items, item)
	}
	return items, nil
}
