// Package workers sizes worker pools for containerized environments.
//
// runtime.NumCPU reports the host CPU count even when a container is
// limited to fewer cores, while GOMAXPROCS follows the cgroup limit in
// Go 1.19+. Frame extraction fans out one ffmpeg subprocess per worker,
// so sizing off the wrong number either starves the pipeline or
// oversubscribes the container.
//
// The EXTRACT_WORKERS environment variable overrides the computed count.
package workers
