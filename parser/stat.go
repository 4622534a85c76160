package parser

import "github.com/styles-lab/mlc/ir"

// parseStat tries each top-level alternative in turn, in fixed order:
// enum, node declaration, group, apply-to, children-of. A miss from one
// alternative restores the cursor to the statement start (undoing any
// prefix speculation) and falls through to the next; a fatal error from
// any alternative propagates immediately.
func (c *cursor) parseStat() (ir.Stat, bool, *Error) {
	mark := *c

	if stat, ok, err := c.parseEnum(); err != nil {
		return nil, false, err
	} else if ok {
		return stat, true, nil
	} else {
		*c = mark
	}

	if stat, ok, err := c.parseNodeDecl(); err != nil {
		return nil, false, err
	} else if ok {
		return stat, true, nil
	} else {
		*c = mark
	}

	if stat, ok, err := c.parseGroup(); err != nil {
		return nil, false, err
	} else if ok {
		return stat, true, nil
	} else {
		*c = mark
	}

	if stat, ok, err := c.parseApplyTo(); err != nil {
		return nil, false, err
	} else if ok {
		return stat, true, nil
	} else {
		*c = mark
	}

	if stat, ok, err := c.parseChildrenOf(); err != nil {
		return nil, false, err
	} else if ok {
		return stat, true, nil
	} else {
		*c = mark
	}

	return nil, false, nil
}

// Parse parses the full contents of a source file into a Schema, in
// source order. filename is used only to stamp
// diagnostic spans.
func Parse(filename, src string) (*ir.Schema, *Error) {
	c := newCursor(filename, src)
	start := c.point()

	var stats []ir.Stat
	for {
		c.skipWS()
		if c.eof() {
			break
		}
		stat, ok, err := c.parseStat()
		if err != nil {
			return nil, err
		}
		if !ok {
			// A trailing comment run with nothing after it is not a
			// statement miss; anything else at this point is.
			if comments, props, perr := c.parsePrefix(); perr == nil && len(props) == 0 && len(comments) > 0 && c.eof() {
				break
			}
			return nil, newErr(c.point(), GenericUnparsed)
		}
		stats = append(stats, stat)
	}

	return &ir.Schema{Span: c.spanTo(start), Stats: stats}, nil
}
