package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "jwt"

// EnvironmentDevelopment disables the Secure attribute on session cookies so
// that they survive plain-HTTP local setups.
const EnvironmentDevelopment = "development"

// EnvironmentProduction is the default; session cookies carry Secure.
const EnvironmentProduction = "production"

// RequestIDHeader is echoed back on every HTTP response.
const RequestIDHeader = "X-Request-ID"
