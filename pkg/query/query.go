// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Identifiers are stored as 32-bit INTEGER columns; larger values are rejected
// here so they never reach the driver.
const idBits = 32

// Ints parses repeated (and comma separated) integer values strictly.
//
// Blank entries are skipped. The first value that is not a 32-bit integer is
// reported in the returned error.
func Ints(vals []string) ([]int, error) {
	var res []int
	for _, v := range splitAll(vals) {
		i, err := parse(v)
		if err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, nil
}

// Int parses a single optional integer value. Empty input yields (0, false, nil).
func Int(val string) (int, bool, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, false, nil
	}
	i, err := parse(val)
	if err != nil {
		return 0, false, err
	}
	return i, true, nil
}

// parse reads one value within the 32-bit identifier range.
func parse(val string) (int, error) {
	i, err := strconv.ParseInt(val, 10, idBits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("query: %q is out of range", val)
		}
		return 0, fmt.Errorf("query: %q is not an integer", val)
	}
	return int(i), nil
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// splitAll flattens ["1,2", "3"] into ["1", "2", "3"].
func splitAll(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}
