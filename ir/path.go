package ir

import (
	"strconv"
	"strings"
)

// DefaultSeparator splits path segments in Resolve and Lookup.
const DefaultSeparator = "."

type segment struct {
	text    string
	index   int
	bracket bool
}

// parsePath splits a dot-delimited path with optional bracket array
// indices, e.g. "users[0].name" or "users.0.name" with sep ".".
func parsePath(path, sep string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	var segs []segment
	for _, part := range strings.Split(path, sep) {
		rest := part
		for {
			open := strings.IndexByte(rest, '[')
			if open == -1 {
				if rest != "" {
					segs = append(segs, fieldSegment(rest))
				}
				break
			}
			if open > 0 {
				segs = append(segs, fieldSegment(rest[:open]))
			}
			end := strings.IndexByte(rest[open:], ']')
			if end == -1 {
				return nil, &PathError{Path: path, Segment: rest, Err: ErrPathNotFound}
			}
			idx, err := strconv.Atoi(rest[open+1 : open+end])
			if err != nil {
				return nil, &PathError{Path: path, Segment: rest[open : open+end+1], Err: ErrPathNotFound}
			}
			segs = append(segs, segment{text: rest[open : open+end+1], index: idx, bracket: true})
			rest = rest[open+end+1:]
		}
	}
	return segs, nil
}

func fieldSegment(text string) segment {
	seg := segment{text: text, index: -1}
	if idx, err := strconv.Atoi(text); err == nil && idx >= 0 {
		seg.index = idx
	}
	return seg
}

// Resolve walks path from y and returns the addressed sub-node as a
// view, without copying. Unresolved segments yield a PathError
// wrapping ErrPathNotFound; a numerically valid but out-of-bounds
// array index yields a PathError wrapping ErrIndexOutOfRange.
func Resolve(y *Node, path, sep string) (*Node, error) {
	segs, err := parsePath(path, sep)
	if err != nil {
		return nil, err
	}
	res := y
	for _, sg := range segs {
		switch res.Type {
		case ArrayType:
			if sg.index < 0 && !sg.bracket {
				return nil, &PathError{Path: path, Segment: sg.text, Err: ErrPathNotFound}
			}
			if sg.index < 0 || sg.index >= len(res.Values) {
				return nil, &PathError{Path: path, Segment: sg.text, Err: ErrIndexOutOfRange}
			}
			res = res.Values[sg.index]
		case ObjectType:
			if sg.bracket {
				return nil, &PathError{Path: path, Segment: sg.text, Err: ErrPathNotFound}
			}
			next := Get(res, sg.text)
			if next == nil {
				return nil, &PathError{Path: path, Segment: sg.text, Err: ErrPathNotFound}
			}
			res = next
		default:
			return nil, &PathError{Path: path, Segment: sg.text, Err: ErrPathNotFound}
		}
	}
	return res, nil
}

// Lookup is the lenient form of Resolve used when evaluating filter
// conditions: any failure is reported as a nil node, never an error.
func Lookup(y *Node, path, sep string) *Node {
	res, err := Resolve(y, path, sep)
	if err != nil {
		return nil
	}
	return res
}
