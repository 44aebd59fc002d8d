// Package handlers provides HTTP request handlers for the sprite
// generator API.
//
// It includes handlers for:
//   - Sprite and VTT generation from a video URL
//   - Serving generated assets from job workspaces
//   - Health checks and version info
package handlers
