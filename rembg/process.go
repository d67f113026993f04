package rembg

import (
	"context"
	"image"
	"log/slog"

	"github.com/chaos-io/whitebg/util"
)

type Processor struct {
	Remover Remover
}

func NewProcessor() *Processor {
	return &Processor{
		Remover: NewWhiteRemover(),
	}
}

type Result struct {
	Width  int
	Height int
	// Cleared 输出图中透明白 (255,255,255,0) 像素的个数
	Cleared int
}

// Process 读取 src，去掉白色背景，以 PNG 写到 dst
//
//	src 不存在 → *NotFoundError，不写任何文件
//	其他失败   → *ProcessError
//	输出先在内存中编码完成，再原子地写入 dst
func (p *Processor) Process(ctx context.Context, src, dst string) (*Result, error) {
	ok, err := util.Exists(src)
	if err != nil {
		return nil, &ProcessError{Op: "stat", Path: src, Err: err}
	}
	if !ok {
		return nil, &NotFoundError{Path: src}
	}

	img, err := util.OpenImage(src)
	if err != nil {
		return nil, &ProcessError{Op: "decode", Path: src, Err: err}
	}

	out, err := p.Remover.Remove(ctx, img)
	if err != nil {
		return nil, &ProcessError{Op: "remove", Path: src, Err: err}
	}

	data, err := util.EncodePNG(out)
	if err != nil {
		return nil, &ProcessError{Op: "encode", Path: dst, Err: err}
	}

	if err := util.WriteFileAtomic(dst, data, 0o644); err != nil {
		return nil, &ProcessError{Op: "write", Path: dst, Err: err}
	}

	b := out.Bounds()
	res := &Result{Width: b.Dx(), Height: b.Dy(), Cleared: countCleared(out)}
	slog.Debug("background removed", "src", src, "dst", dst,
		"width", res.Width, "height", res.Height, "cleared", res.Cleared, "bytes", len(data))

	return res, nil
}

func countCleared(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if straightNRGBA(img.At(x, y)) == transparentWhite {
				n++
			}
		}
	}
	return n
}
