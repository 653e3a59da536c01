// Package leads captures contact form submissions and newsletter signups.
package leads
