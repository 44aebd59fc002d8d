// Package pipeline orchestrates sprite generation jobs. Each job owns
// an isolated workspace directory, runs the download / probe / sample /
// compose / cue stages in order, aborts on the first unrecoverable
// failure, and always cleans up its intermediate files. Only the sprite
// image and VTT file survive a job.
package pipeline
