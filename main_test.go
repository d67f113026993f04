package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaos-io/whitebg/rembg"
	"github.com/chaos-io/whitebg/util"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, inputPath)
	dst := filepath.Join(dir, outputPath)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	data, err := util.EncodePNG(img)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0o644))

	assert.Equal(t, "Success: Image processing complete", run(context.Background(), rembg.NewProcessor(), src, dst))

	got, err := util.OpenImage(dst)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 0}, color.NRGBAModel.Convert(got.At(0, 0)))
}

func TestRun_InputNotFound(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, inputPath)
	dst := filepath.Join(dir, outputPath)

	assert.Equal(t, "Error: Input file "+src+" not found", run(context.Background(), rembg.NewProcessor(), src, dst))

	_, err := os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
