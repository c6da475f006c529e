// Package pricing holds the global fare configuration and the quote computation derived from it.
package pricing
