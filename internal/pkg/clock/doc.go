// Package clock abstracts the current time behind a small interface so that
// time-bound behavior (OTP expiry, session lifetimes) can be driven by a fixed
// clock in tests instead of the wall clock.
package clock
