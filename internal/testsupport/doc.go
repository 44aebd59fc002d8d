// Package testsupport provides shared test doubles, most notably an
// in-process fake of the ffmpeg toolchain capability.
package testsupport
