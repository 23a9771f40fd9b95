// Package identity provides the authenticated caller of a request.
//
// An Identity combines verified token claims (user id, username, timestamps)
// with request context (remote IP, request id).
//
// # Basic Usage
//
//	claims, err := signer.Parse(bearer)
//	id, err := identity.FromClaims(claims)
//	id.WithRemoteIP(clientIP).WithRequestID(requestID)
//
//	ctx = identity.Set(ctx, id)
//	id, ok := identity.Get(ctx)
//
// The library functions take the caller's user id explicitly; the transport
// layer reads it from the Identity.
package identity
