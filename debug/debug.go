package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Query  bool
	Filter bool
	Sort   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Query = boolEnv("JSONQ_DEBUG_QUERY")
	d.Filter = boolEnv("JSONQ_DEBUG_FILTER")
	d.Sort = boolEnv("JSONQ_DEBUG_SORT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Query() bool {
	return d.Query
}
func Filter() bool {
	return d.Filter
}
func Sort() bool {
	return d.Sort
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
