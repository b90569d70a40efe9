package tool

import (
	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
)

// WithToolkit sets a toolkit for generation options.
// The toolkit is stored under opt.ToolkitKey and can be retrieved
// with FromOpts.
func WithToolkit(toolkit *Toolkit) opt.Opt {
	if toolkit == nil {
		return opt.Error(heritage.ErrBadParameter.With("toolkit is required"))
	}
	return opt.SetAny(opt.ToolkitKey, toolkit)
}

// FromOpts returns the toolkit set with WithToolkit, or nil
func FromOpts(options *opt.Options) *Toolkit {
	if options == nil {
		return nil
	}
	if tk, ok := options.Get(opt.ToolkitKey).(*Toolkit); ok {
		return tk
	}
	return nil
}
