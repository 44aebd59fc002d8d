// Package middleware provides HTTP middleware for the sprite generator:
// W3C Extended Log Format request logging and Prometheus request metrics.
package middleware
