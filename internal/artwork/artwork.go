// Package artwork decodes thumbnails, scales them for the carousel and the
// info card, and renders the blurred background of the lyrics panel.
package artwork

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // thumbnails may be jpeg
	_ "image/png"  // or png
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // yt-dlp writes webp thumbnails
)

// Background rendering parameters
const (
	BackgroundWidth  = 800
	BackgroundHeight = 600
	BlurFactor       = 16
	DimAlpha         = 100
)

// PlaceholderColor fills backgrounds without a thumbnail
var PlaceholderColor = color.NRGBA{R: 240, G: 240, B: 240, A: 255}

// Decode reads an image file in any registered format
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales img to fit within w x h, keeping its aspect ratio.
func Fit(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dw, dh := w, h
	ratio := float64(sw) / float64(sh)
	if float64(w)/float64(h) > ratio {
		dw = max(1, int(float64(h)*ratio))
	} else {
		dh = max(1, int(float64(w)/ratio))
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Cover scales img to cover w x h and crops the overflow around the center.
func Cover(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if sw == 0 || sh == 0 {
		return dst
	}

	scale := max(float64(w)/float64(sw), float64(h)/float64(sh))
	cw := int(float64(w) / scale)
	ch := int(float64(h) / scale)
	x0 := b.Min.X + (sw-cw)/2
	y0 := b.Min.Y + (sh-ch)/2
	src := image.Rect(x0, y0, x0+cw, y0+ch)

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// Blur softens img by shrinking it factor times and scaling it back up.
func Blur(img *image.RGBA, factor int) *image.RGBA {
	b := img.Bounds()
	small := image.NewRGBA(image.Rect(0, 0, max(1, b.Dx()/factor), max(1, b.Dy()/factor)))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.BiLinear.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out
}

// Darken lays a translucent black layer over img in place.
func Darken(img *image.RGBA, alpha uint8) {
	overlay := image.NewUniform(color.NRGBA{A: alpha})
	draw.Draw(img, img.Bounds(), overlay, image.Point{}, draw.Over)
}

// Placeholder returns a flat background of w x h
func Placeholder(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor), image.Point{}, draw.Src)
	return img
}

// RenderBackground produces the blurred and dimmed lyrics background.
func RenderBackground(img image.Image, w, h int) *image.RGBA {
	bg := Blur(Cover(img, w, h), BlurFactor)
	Darken(bg, DimAlpha)
	return bg
}
