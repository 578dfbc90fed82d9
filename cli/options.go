package cli

// Options is an insertion-ordered string map of long options.
type Options struct {
	keys   []string
	values map[string]string
}

// NewOptions returns an empty Options.
func NewOptions() *Options {
	return &Options{values: make(map[string]string)}
}

// Set records value for name. A repeated name keeps its first position.
func (o *Options) Set(name, value string) {
	if _, ok := o.values[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.values[name] = value
}

// Get returns the value for name and whether it was given.
func (o *Options) Get(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.values[name]
	return v, ok
}

// Keys returns option names in the order they were first given.
func (o *Options) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of options.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Map returns the options as a plain map.
func (o *Options) Map() map[string]string {
	out := make(map[string]string, o.Len())
	for _, k := range o.Keys() {
		out[k] = o.values[k]
	}
	return out
}
