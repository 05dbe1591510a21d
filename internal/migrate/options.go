package migrate

// AccessPolicy selects how a synthesized property spells private access.
type AccessPolicy uint8

const (
	// AccessKeyword emits the 'private' keyword (default).
	AccessKeyword AccessPolicy = iota
	// AccessHashName emits an ECMAScript #-private name and no keyword.
	AccessHashName
)

// Options configures one rewrite run. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// Decorators is the set of class decorators that qualify a class.
	Decorators []string
	// InjectFn is the resolution function identifier.
	InjectFn string
	// ImportFrom is the module the resolution function is imported from.
	ImportFrom string
	// Access selects keyword or hash-name private properties.
	Access AccessPolicy
}

// DefaultOptions returns the stock Angular configuration.
func DefaultOptions() Options {
	return Options{
		Decorators: []string{"Component", "Directive", "Pipe", "Injectable"},
		InjectFn:   "inject",
		ImportFrom: "@angular/core",
		Access:     AccessKeyword,
	}
}

// RecognizesDecorator reports whether name is in the qualifying set.
// Dotted decorator names match on their last segment too.
func (o *Options) RecognizesDecorator(name string) bool {
	last := name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			last = name[i+1:]
			break
		}
	}
	for _, d := range o.Decorators {
		if d == name || d == last {
			return true
		}
	}
	return false
}
