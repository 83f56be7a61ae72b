// Package collection provides generic stack and queue containers that converters
// recognize through their All, Clear and Push or Enqueue methods.
package collection
