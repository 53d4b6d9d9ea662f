package stateregistry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PathSegment represents a single component of an address path, e.g., `name[index]`.
type PathSegment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewPathSegment creates a new path segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a new path segment that includes an index.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Address is the structured name of a state variable.
type Address struct {
	Path []PathSegment
}

// ZoneAddress builds `<zone>.<quantity>`.
func ZoneAddress(zone, quantity string) Address {
	return Address{Path: []PathSegment{NewPathSegment(zone), NewPathSegment(quantity)}}
}

// IndexedZoneAddress builds `<zone>.<quantity>[<index>]`.
func IndexedZoneAddress(zone, quantity string, index int) Address {
	return Address{Path: []PathSegment{NewPathSegment(zone), NewPathSegmentWithIndex(quantity, index)}}
}

// String serializes the Address into its canonical path string representation.
func (a Address) String() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}
	return sb.String()
}

// segmentRegex is used to parse a single segment of a path, e.g., `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// Parse creates an Address by parsing its canonical string representation.
// Every error wraps ErrInvalidAddress.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}

	var addr Address
	for _, segmentStr := range strings.Split(raw, ".") {
		if segmentStr == "" {
			return Address{}, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidAddress, raw)
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return Address{}, fmt.Errorf("%w: invalid path segment %q", ErrInvalidAddress, segmentStr)
		}

		segment := NewPathSegment(matches[1])
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return Address{}, fmt.Errorf("%w: index of %q: %v", ErrInvalidAddress, segmentStr, err)
			}
			segment.Index = index
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}
