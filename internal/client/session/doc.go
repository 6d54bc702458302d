// Package session holds the client's authenticated identity.
//
// Store is the single shared session object. It performs the login,
// register, logout and startup bootstrap flows against client.AuthAPI and
// mirrors the bearer token into a TokenStore so it survives restarts.
// Consumers receive the Store explicitly; there is no package-level state.
package session
