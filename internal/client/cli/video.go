package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/vidgen/internal/client/services"
	"github.com/dmitrijs2005/vidgen/internal/filex"
)

// downloadDir receives downloads that were given no target file.
const downloadDir = "downloads"

// Generate submits prompt, asking for one when it is empty.
func (a *App) Generate(ctx context.Context, prompt string) error {
	if prompt == "" {
		var err error
		if prompt, err = getSimpleText(a.reader, "Describe your video", a.out); err != nil {
			return err
		}
	}
	if _, err := services.CheckPrompt(prompt); err != nil {
		a.reportMutationError(err)
		return err
	}
	a.println("Generating video, this can take a while...")
	v, err := a.videos.Generate(ctx, prompt)
	if err != nil {
		a.reportMutationError(err)
		return err
	}
	a.println("Video URL:", v.VideoURL)
	return nil
}

func (a *App) Enhance(ctx context.Context, prompt string) error {
	if prompt == "" {
		var err error
		if prompt, err = getSimpleText(a.reader, "Prompt to enhance", a.out); err != nil {
			return err
		}
	}
	out, err := a.videos.Enhance(ctx, prompt)
	if err != nil {
		a.reportMutationError(err)
		return err
	}
	a.println("Enhanced prompt:", out)
	return nil
}

func (a *App) Recent(ctx context.Context) error {
	videos, err := a.videos.Recent(ctx)
	if err != nil {
		a.reportFetchError(ctx, "recent videos", err)
		return err
	}
	renderVideos(a.out, videos, "No videos yet, try 'generate <prompt>'")
	return nil
}

func (a *App) Examples(ctx context.Context) error {
	videos, err := a.videos.Examples(ctx)
	if err != nil {
		a.reportFetchError(ctx, "example videos", err)
		return err
	}
	renderVideos(a.out, videos, "No example videos")
	return nil
}

func (a *App) Download(ctx context.Context, url, path string) error {
	if path == "" {
		dir, err := filex.EnsureSubDir(downloadDir)
		if err != nil {
			a.println("Download failed:", err)
			return err
		}
		path = filepath.Join(dir, filex.NameFromURL(url, "video.mp4"))
	}

	n, err := a.dl.ToFile(ctx, url, path)
	if err != nil {
		a.println("Download failed:", err)
		return err
	}
	a.println(fmt.Sprintf("Saved %d bytes to %s", n, path))
	return nil
}
