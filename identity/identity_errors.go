package identity

import "errors"

var (
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrIdentityFetchFailed = errors.New("identity fetch failed")
	ErrNoIDToken           = errors.New("no id token in response")
)
