// Package startup handles application initialization: configuration
// loading from environment variables, working directory setup, media
// toolchain checks, and structured startup/shutdown logging.
package startup
