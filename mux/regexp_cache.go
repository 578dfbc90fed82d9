package mux

// templateCache holds the templates compiled by one Builder, keyed by raw
// template. Any registers one template under five methods and nested groups
// often repeat templates, so routes share their compiled patterns.
type templateCache map[string]*routeRegexp

// compile returns the cached *routeRegexp for tpl, compiling and caching it
// on first use. Failed compilations are not cached.
func (c templateCache) compile(tpl string) (*routeRegexp, error) {
	if rr, ok := c[tpl]; ok {
		return rr, nil
	}

	rr, err := newRouteRegexp(tpl)
	if err != nil {
		return nil, err
	}

	c[tpl] = rr
	return rr, nil
}
