package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a file's content.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Width returns End - Start. It is only meaningful for a valid span.
func (s Span) Width() uint32 {
	return s.End - s.Start
}

func (s Span) Valid() bool {
	return s.Start <= s.End
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
