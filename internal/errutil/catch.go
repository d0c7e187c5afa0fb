package errutil

import "github.com/cockroachdb/errors"

// CatchSimple runs a sequence of error returning functions, collecting their
// errors. Without aggregation it stops executing after the first error.
type CatchSimple struct {
	errors []error
	opts   catchOpts
}

type catchOpts struct {
	aggregate bool
}

type CatchOpt func(o *catchOpts)

// WithAggregation keeps executing after an error occurs, collecting every error.
func WithAggregation() CatchOpt {
	return func(o *catchOpts) { o.aggregate = true }
}

func NewCatchSimple(opts ...CatchOpt) *CatchSimple {
	c := &CatchSimple{}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

func (c *CatchSimple) Exec(f func() error) {
	if !c.opts.aggregate && len(c.errors) > 0 {
		return
	}
	if err := f(); err != nil {
		c.errors = append(c.errors, err)
	}
}

// Error returns the first caught error. Any further errors are attached to it
// as secondary errors and show up in its verbose format.
func (c *CatchSimple) Error() error {
	if len(c.errors) == 0 {
		return nil
	}
	err := c.errors[0]
	for _, other := range c.errors[1:] {
		err = errors.CombineErrors(err, other)
	}
	return err
}

// Errors returns every caught error in the order it occurred.
func (c *CatchSimple) Errors() []error { return c.errors }
