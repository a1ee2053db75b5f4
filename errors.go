package sigv2

// MissingEndpointError indicates a signed request was attempted on a
// client with no endpoint configured. Raised before any network I/O.
type MissingEndpointError struct{}

func (*MissingEndpointError) Error() string {
	return "an endpoint must be configured before sending requests"
}
