package common

// AuthorizationHeaderName is the HTTP header that carries the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is stripped from the authorization header value when present.
const BearerPrefix = "Bearer "
