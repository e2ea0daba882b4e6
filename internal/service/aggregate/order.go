package aggregate

import (
	"cmp"
	"database/sql"
	"time"
)

// compareString orders values ascending with missing last.
func compareString(a, b sql.NullString) int {
	switch {
	case a.Valid && b.Valid:
		return cmp.Compare(a.String, b.String)
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	}
	return 0
}

// compareInt orders values ascending with missing last.
func compareInt(a, b sql.NullInt32) int {
	switch {
	case a.Valid && b.Valid:
		return cmp.Compare(a.Int32, b.Int32)
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	}
	return 0
}

var weekdayRank = map[string]int{
	time.Monday.String():    0,
	time.Tuesday.String():   1,
	time.Wednesday.String(): 2,
	time.Thursday.String():  3,
	time.Friday.String():    4,
	time.Saturday.String():  5,
	time.Sunday.String():    6,
}

// compareWeekday orders Monday..Sunday, then unknown names lexicographically, then missing.
func compareWeekday(a, b sql.NullString) int {
	ra, rb := rankWeekday(a), rankWeekday(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	return compareString(a, b)
}

func rankWeekday(v sql.NullString) int {
	if !v.Valid {
		return len(weekdayRank) + 1
	}
	if r, ok := weekdayRank[v.String]; ok {
		return r
	}
	return len(weekdayRank)
}
