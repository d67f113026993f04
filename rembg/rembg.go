package rembg

import (
	"context"
	"image"
	"image/color"
)

// Threshold R、G、B 三个通道都严格大于该值才算"接近白色"
const Threshold = 240

// transparentWhite 被抠掉的像素统一写成透明白
var transparentWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

// WhiteRemover 把接近白色的背景像素变成全透明
type WhiteRemover struct{}

func NewWhiteRemover() *WhiteRemover {
	return &WhiteRemover{}
}

func (w *WhiteRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	out := toNRGBA(img)
	if err := maskWhite(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveWhite 返回新的 NRGBA 图片，输入图片不会被修改
func RemoveWhite(img image.Image) *image.NRGBA {
	out := toNRGBA(img)
	_ = maskWhite(context.Background(), out)
	return out
}

// IsNearWhite 判断像素是否属于白色背景
func IsNearWhite(r, g, b uint8) bool {
	return r > Threshold && g > Threshold && b > Threshold
}

// maskWhite 逐像素原地处理，每行开始前检查 ctx
func maskWhite(ctx context.Context, img *image.NRGBA) error {
	b := img.Bounds()
	w := b.Dx()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for i := 0; i < w*4; i += 4 {
			if IsNearWhite(row[i], row[i+1], row[i+2]) {
				row[i] = transparentWhite.R
				row[i+1] = transparentWhite.G
				row[i+2] = transparentWhite.B
				row[i+3] = transparentWhite.A
			}
		}
	}
	return nil
}

// toNRGBA 复制成 4 通道、非预乘 alpha 的 NRGBA，保持原 bounds
// 非预乘的颜色直接取值，不经过 RGBA()，alpha 为 0 的像素也保留原 RGB
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)],
				src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)])
		}
		return dst
	case *image.NRGBA64:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetNRGBA(x, y, nrgba64To8(src.NRGBA64At(x, y)))
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetNRGBA(x, y, straightNRGBA(img.At(x, y)))
		}
	}
	return dst
}

// straightNRGBA 调色板等通用路径里，非预乘颜色同样不能走 NRGBAModel
func straightNRGBA(c color.Color) color.NRGBA {
	switch c := c.(type) {
	case color.NRGBA:
		return c
	case color.NRGBA64:
		return nrgba64To8(c)
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// nrgba64To8 16 位通道取高字节
func nrgba64To8(c color.NRGBA64) color.NRGBA {
	return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: uint8(c.A >> 8)}
}
