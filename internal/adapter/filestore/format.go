package filestore

import (
	"fmt"
	"strconv"
)

// DefaultOutputDir is used when a save is requested without a directory.
const DefaultOutputDir = "data/processed"

// FormatCell renders a table cell as text. Missing values become empty strings.
// A negative precision prints floats with the fewest digits that round-trip.
func FormatCell(v any, precision int) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', precision, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func outputDir(dir string) string {
	if dir == "" {
		return DefaultOutputDir
	}
	return dir
}
