// Package userservice implements a small account service: user
// registration, credential login, and bearer-token authorization.
//
// Credentials:
//   - Passwords are stored as bcrypt digests. HashPassword and
//     ComparePasswordAndHash are the only code paths that touch raw
//     passwords; lookups and failed comparisons collapse into a single
//     invalid-credentials error so callers cannot probe which emails
//     exist.
//
// Tokens:
//   - TokenService issues and validates HS256 JWTs whose subject is the
//     account email. Validation distinguishes expired, malformed, and
//     badly signed tokens in the logs but reports all of them to the
//     caller the same way.
//
// Requests:
//   - RequestAuthorizer is the Fiber middleware guarding protected
//     routes. On success it resolves the token subject to a stored user
//     and binds a Principal to the request context; handlers read it
//     back with PrincipalFromContext. Failures surface as structured
//     Problem responses through the app level ErrorHandler.
package userservice
