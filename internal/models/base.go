// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// IntSlice is a JSON column holding a list of integers (position slots).
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan unmarshals a JSON column into the slice.
func (s *IntSlice) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*s = IntSlice{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("IntSlice: expected []byte or string, got %T", src)
	}
	return json.Unmarshal(b, s)
}

func (s IntSlice) Contains(n int) bool {
	for _, v := range s {
		if v == n {
			return true
		}
	}
	return false
}

// Sequence returns 1..n.
func Sequence(n int) IntSlice {
	out := make(IntSlice, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// Without returns the values of s not present in taken, ascending.
func (s IntSlice) Without(taken []int) IntSlice {
	used := make(map[int]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}
	out := make(IntSlice, 0, len(s))
	for _, v := range s {
		if _, ok := used[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
