// Package otp generates the short numeric one-time codes sent to users over
// email or SMS during login and registration.
//
// The generator is a pure function over a secure random source; storage,
// expiry, and verification live elsewhere.
package otp
