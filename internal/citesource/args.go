package citesource

// Arg is one keyword argument of a directive after behavior keywords
// have been stripped: a key with one value (string form) or two
// (tuple form).
type Arg struct {
	Key    string
	Values []string
}

// Args is the ordered source-specific argument list handed to a schema.
type Args []Arg

// Keys returns the argument keys in order.
func (a Args) Keys() []string {
	keys := make([]string, len(a))
	for i, arg := range a {
		keys[i] = arg.Key
	}
	return keys
}

// Lookup returns the first argument with the given key.
func (a Args) Lookup(key string) (Arg, bool) {
	for _, arg := range a {
		if arg.Key == key {
			return arg, true
		}
	}
	return Arg{}, false
}
