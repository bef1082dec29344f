package nconf

// DecodeOptions collects Decode's configuration knobs. The zero value
// is a usable default (current working directory, OS filesystem,
// MaxImportDepth 64).
type DecodeOptions struct {
	BaseDir        string
	Reader         FileReader
	MaxImportDepth int
}

// Option configures a DecodeOptions value.
type Option func(*DecodeOptions)

// WithBaseDir sets the directory relative imports are resolved against
// for the initial decode call.
func WithBaseDir(dir string) Option {
	return func(o *DecodeOptions) { o.BaseDir = dir }
}

// WithFileReader injects the capability backing @import resolution.
func WithFileReader(r FileReader) Option {
	return func(o *DecodeOptions) { o.Reader = r }
}

// WithMaxImportDepth bounds recursive import depth, independent of
// cycle detection.
func WithMaxImportDepth(n int) Option {
	return func(o *DecodeOptions) { o.MaxImportDepth = n }
}

const defaultMaxImportDepth = 64

func resolveOptions(opts []Option) DecodeOptions {
	o := DecodeOptions{
		BaseDir:        ".",
		Reader:         osFileReader{},
		MaxImportDepth: defaultMaxImportDepth,
	}
	for _, apply := range opts {
		apply(&o)
	}
	if o.Reader == nil {
		o.Reader = osFileReader{}
	}
	if o.MaxImportDepth <= 0 {
		o.MaxImportDepth = defaultMaxImportDepth
	}
	return o
}
