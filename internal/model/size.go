package model

import (
	"fmt"
	"strings"
)

// SizeBucket is the coarse change-size classification used for filtering
type SizeBucket string

const (
	SizeAny    SizeBucket = ""
	SizeSmall  SizeBucket = "small"
	SizeMedium SizeBucket = "medium"
	SizeLarge  SizeBucket = "large"
)

// SizeBuckets lists the buckets in the order the filter cycles through them
var SizeBuckets = []SizeBucket{SizeAny, SizeSmall, SizeMedium, SizeLarge}

// ParseSizeBucket parses a bucket name; "", "all" and "any" mean no filter
func ParseSizeBucket(s string) (SizeBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return SizeAny, nil
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	}
	return SizeAny, fmt.Errorf("unknown change size %q (want small, medium or large)", s)
}

// Label returns the description shown in the filter bar
func (b SizeBucket) Label() string {
	switch b {
	case SizeSmall:
		return "Small (<= 10 changes)"
	case SizeMedium:
		return "Medium (11-50 changes)"
	case SizeLarge:
		return "Large (> 50 changes)"
	}
	return "All sizes"
}

// Next returns the bucket after b, wrapping around
func (b SizeBucket) Next() SizeBucket {
	for i, bucket := range SizeBuckets {
		if bucket == b {
			return SizeBuckets[(i+1)%len(SizeBuckets)]
		}
	}
	return SizeAny
}
