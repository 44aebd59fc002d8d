package handlers

import (
	"context"

	"video-sprite-generator/internal/pipeline"
	"video-sprite-generator/internal/startup"
)

// SpriteGenerator runs the sprite generation pipeline for one video URL.
type SpriteGenerator interface {
	Run(ctx context.Context, videoURL string) (*pipeline.Result, error)
}

type Handlers struct {
	generator    SpriteGenerator
	thumbnailDir string
}

func New(generator SpriteGenerator, config *startup.Config) *Handlers {
	return &Handlers{
		generator:    generator,
		thumbnailDir: config.ThumbnailDir,
	}
}
