package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// Shipment serials look like SHP-2026-0042. The sequence restarts at 1
// each calendar year.

const serialPrefix = "SHP"

func FormatSerial(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", serialPrefix, year, seq)
}

// ParseSerialSeq extracts the sequence number from a serial of the given
// year. Returns 0 for serials of other years or malformed values.
func ParseSerialSeq(serial string, year int) int {
	prefix := fmt.Sprintf("%s-%d-", serialPrefix, year)
	if !strings.HasPrefix(serial, prefix) {
		return 0
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(serial, prefix))
	if err != nil {
		return 0
	}
	return seq
}

// MaxSerialSeq returns the highest sequence among the serials for the
// year. Comparison is numeric: once a year passes 9999 shipments the
// zero-padded serials no longer sort lexicographically.
func MaxSerialSeq(serials []string, year int) int {
	max := 0
	for _, s := range serials {
		if n := ParseSerialSeq(s, year); n > max {
			max = n
		}
	}
	return max
}
