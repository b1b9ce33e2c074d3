// Package sequence allocates human-readable, prefixed, zero-padded identifiers such as PROD0001.
package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrForeignIdentifier is returned when an identifier does not carry the expected prefix.
	ErrForeignIdentifier = errors.New("identifier does not match sequence prefix")
	// ErrMalformedIdentifier is returned when an identifier has the prefix but no parseable counter.
	ErrMalformedIdentifier = errors.New("identifier has a malformed counter suffix")
)

// DefaultWidth is the zero-padding applied to every entity sequence.
const DefaultWidth = 4

// Format describes one entity's identifier shape.
type Format struct {
	Prefix string
	Width  int
}

// Known entity formats.
var (
	Products   = Format{Prefix: "PROD", Width: DefaultWidth}
	Categories = Format{Prefix: "CAT", Width: DefaultWidth}
	Pets       = Format{Prefix: "PET", Width: DefaultWidth}
	Offerings  = Format{Prefix: "SRV", Width: DefaultWidth}
	Orders     = Format{Prefix: "CBC", Width: DefaultWidth}
)

// Name identifies the sequence row backing this format.
func (f Format) Name() string {
	return strings.ToLower(f.Prefix)
}

// Format renders the identifier for counter n. Counters wider than Width are not truncated.
func (f Format) Format(n int64) string {
	width := f.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return fmt.Sprintf("%s%0*d", f.Prefix, width, n)
}

// Parse extracts the counter from id.
func (f Format) Parse(id string) (int64, error) {
	if !strings.HasPrefix(id, f.Prefix) {
		return 0, fmt.Errorf("%w: %q (prefix %q)", ErrForeignIdentifier, id, f.Prefix)
	}
	suffix := id[len(f.Prefix):]
	if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedIdentifier, id)
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedIdentifier, id, err)
	}
	return n, nil
}

// Highest returns the largest counter among ids carrying the prefix, or 0 when none do.
// Ids with a different prefix are ignored; ids with the prefix and a bad suffix are reported.
func (f Format) Highest(ids []string) (int64, error) {
	var highest int64
	for _, id := range ids {
		n, err := f.Parse(id)
		if errors.Is(err, ErrForeignIdentifier) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

// Next returns the identifier following the highest existing one.
// Callers must serialize Next with the insert of its result.
func (f Format) Next(existing []string) (string, error) {
	highest, err := f.Highest(existing)
	if err != nil {
		return "", err
	}
	return f.Format(highest + 1), nil
}

// Counter remembers the highest identifier handed out so in-memory stores
// never reissue the id of a deleted row. Callers serialize access.
type Counter struct {
	Format Format
	last   int64
}

// Next returns the identifier following both the highest existing id and every id observed so far.
// It does not reserve the result; call Observe once the row is stored.
func (c *Counter) Next(existing []string) (string, error) {
	highest, err := c.Format.Highest(existing)
	if err != nil {
		return "", err
	}
	if c.last > highest {
		highest = c.last
	}
	return c.Format.Format(highest + 1), nil
}

// Observe records a stored identifier. Ids outside the format are ignored.
func (c *Counter) Observe(id string) {
	if n, err := c.Format.Parse(id); err == nil && n > c.last {
		c.last = n
	}
}
