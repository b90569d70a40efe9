package httpclient

import (
	// Packages
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLimit sets the maximum number of results to return.
// If limit is nil, any existing limit is removed.
func WithLimit(limit *uint) opt.Opt {
	if limit == nil {
		return func(o *opt.Options) error {
			o.Del(opt.LimitKey)
			return nil
		}
	}
	return opt.SetUint(opt.LimitKey, *limit)
}

// WithOffset sets the pagination offset.
// If offset is 0, any existing offset is removed.
func WithOffset(offset uint) opt.Opt {
	if offset == 0 {
		return func(o *opt.Options) error {
			o.Del(opt.OffsetKey)
			return nil
		}
	}
	return opt.SetUint(opt.OffsetKey, offset)
}
