package opt_test

import (
	"errors"
	"testing"

	// Packages
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func TestApplyEmpty(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply()
	assert.NoError(err)
	assert.NotNil(opts)
	assert.False(opts.Has("missing"))
	assert.Nil(opts.Get("missing"))
}

func TestStringOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetString("key", "  first "), opt.SetString("key", "second"))
	assert.NoError(err)
	assert.Equal("second", opts.GetString("key"))
	assert.True(opts.Has("key"))
}

func TestUintOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetUint("limit", 10))
	assert.NoError(err)
	assert.Equal(uint(10), opts.GetUint("limit"))
	assert.Equal(uint(0), opts.GetUint("missing"))
}

func TestFloatOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetFloat64("score", 1.5))
	assert.NoError(err)
	assert.InDelta(1.5, opts.GetFloat64("score"), 1e-9)
}

func TestAnyStoredAsIs(t *testing.T) {
	assert := assert.New(t)
	tk := struct{ Name string }{"toolkit"}
	opts, err := opt.Apply(opt.SetAny(opt.ToolkitKey, tk))
	assert.NoError(err)
	assert.True(opts.Has(opt.ToolkitKey))
	assert.Equal(tk, opts.Get(opt.ToolkitKey))
}

func TestErrorOption(t *testing.T) {
	assert := assert.New(t)
	sentinel := errors.New("sentinel")
	opts, err := opt.Apply(opt.NoOp(), opt.WithOpts(opt.SetString("a", "b"), opt.Error(sentinel)))
	assert.ErrorIs(err, sentinel)
	assert.Nil(opts)
}

func TestNilOptionsIgnored(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(nil, opt.WithOpts(nil, opt.SetUint("n", 3)))
	assert.NoError(err)
	assert.Equal(uint(3), opts.GetUint("n"))
}

func TestQuery(t *testing.T) {
	assert := assert.New(t)
	o, err := opt.Apply(opt.SetUint(opt.LimitKey, 5), opt.SetString(opt.SystemPromptKey, "x"))
	assert.NoError(err)
	q := o.Query(opt.LimitKey, opt.OffsetKey)
	assert.Equal("limit=5", q.Encode())
}
