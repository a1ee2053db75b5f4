package credentials

// MissingKeyError indicates a signed request was attempted with no access
// key id configured.
type MissingKeyError struct{}

func (*MissingKeyError) Error() string {
	return "an access key id must be configured before sending requests"
}

// MissingSecretError indicates signing was attempted with no secret
// access key configured.
type MissingSecretError struct{}

func (*MissingSecretError) Error() string {
	return "a secret access key must be configured before signing requests"
}
