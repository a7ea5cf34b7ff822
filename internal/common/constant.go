// Package common contains constants and sentinel errors shared by the
// server and its clients.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"
