package fetch

import (
	"fmt"
	"math"
)

// NoMoreContent is the sentinel returned when start_index points at or
// beyond the end of the content.
const NoMoreContent = "<e>No more content available.</e>"

// View is a bounded window into content. It is recomputed from scratch
// on every call; the NextStart cursor is the caller's only resumption
// state.
type View struct {
	Slice     string
	Total     int
	Start     int
	MaxLength int
	NextStart int
	HasMore   bool
}

// Paginate slices text[start:start+maxLength], clamped to the end of
// the text. It never alters the characters of the slice.
func Paginate(text string, start, maxLength int) View {
	total := len(text)
	v := View{Total: total, Start: start, MaxLength: maxLength}
	if start >= total {
		return v
	}
	end := start + maxLength
	if end > total {
		end = total
	}
	v.Slice = text[start:end]
	v.NextStart = end
	v.HasMore = end < total
	return v
}

// PercentShown reports how much of the content the caller has seen once
// this view is consumed, rounded to the nearest integer.
func (v View) PercentShown() int {
	if v.Total == 0 {
		return 100
	}
	return int(math.Round(float64(v.Start+len(v.Slice)) / float64(v.Total) * 100))
}

// Render produces the slice plus its status annotation. A full slice
// with content remaining gets a truncation notice carrying the resume
// cursor; a continuation call that reached the end reports the
// percentage alone; a first call that consumed everything is returned
// bare.
func (v View) Render() string {
	if v.Slice == "" {
		return NoMoreContent
	}
	switch {
	case len(v.Slice) == v.MaxLength && v.HasMore:
		return v.Slice + fmt.Sprintf(
			"\n\n<e>Content truncated. Showing %d%% of total content. Call again with start_index=%d to continue.</e>",
			v.PercentShown(), v.NextStart)
	case v.Start > 0:
		return v.Slice + fmt.Sprintf("\n\n<e>Showing %d%% of total content.</e>", v.PercentShown())
	default:
		return v.Slice
	}
}
