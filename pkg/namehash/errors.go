package namehash

import "fmt"

// UnsupportedDigestError reports a digest the hasher cannot compute.
type UnsupportedDigestError struct {
	Name string
}

func (e *UnsupportedDigestError) Error() string {
	if e == nil {
		return "unsupported digest"
	}
	return fmt.Sprintf("unsupported digest %q", e.Name)
}

// InvalidNameError reports a name rejected by NamehashStrict.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	if e == nil {
		return "invalid name"
	}
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}
