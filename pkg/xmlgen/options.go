package xmlgen

// Options controls encoding.
type Options struct {
	// Optimize drops elements left structurally empty after building.
	Optimize bool
	// Minify removes indentation and newlines.
	Minify bool
	// SchemaLocation, when set, is written as xsi:noNamespaceSchemaLocation
	// on the root element.
	SchemaLocation string
}

// Option customises generation.
type Option func(*Options)

// WithOptimize enables the empty-element pass.
func WithOptimize() Option {
	return func(o *Options) { o.Optimize = true }
}

// WithMinify disables indentation.
func WithMinify() Option {
	return func(o *Options) { o.Minify = true }
}

// WithSchemaLocation references an XSD from the root element.
func WithSchemaLocation(path string) Option {
	return func(o *Options) { o.SchemaLocation = path }
}

// WithOptions copies a prepared Options value.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func collect(options []Option) Options {
	var out Options
	for _, opt := range options {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
