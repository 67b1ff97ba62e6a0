// Package process holds platform-specific helpers for terminating the
// headless browser spawned by the Chrome PDF engine.
package process
