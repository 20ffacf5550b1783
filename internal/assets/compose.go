package assets

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// StripWidth is the width of a strip of size tiles cut from a tile of
// width tileW with border-pixel caps on both sides.
func StripWidth(tileW, border, size int) int {
	return (tileW-2*border)*size + 2*border
}

// TileStrip repeats the middle of tile size times between its left and
// right border caps.
func TileStrip(tile image.Image, border, size int) *image.NRGBA {
	b := tile.Bounds()
	w, h := b.Dx(), b.Dy()
	middle := w - 2*border

	dst := imaging.New(StripWidth(w, border, size), h, color.NRGBA{})
	dst = imaging.Paste(dst, imaging.Crop(tile, image.Rect(b.Min.X, b.Min.Y, b.Min.X+border, b.Max.Y)), image.Pt(0, 0))

	mid := imaging.Crop(tile, image.Rect(b.Min.X+border, b.Min.Y, b.Max.X-border, b.Max.Y))
	for i := 0; i < size; i++ {
		dst = imaging.Paste(dst, mid, image.Pt(border+middle*i, 0))
	}

	dst = imaging.Paste(dst, imaging.Crop(tile, image.Rect(b.Max.X-border, b.Min.Y, b.Max.X, b.Max.Y)), image.Pt(dst.Bounds().Dx()-border, 0))
	return dst
}

// TileAcross repeats tile horizontally until width is covered.
func TileAcross(tile image.Image, width int) *image.NRGBA {
	b := tile.Bounds()
	dst := imaging.New(width, b.Dy(), color.NRGBA{})
	for x := 0; x < width; x += b.Dx() {
		dst = imaging.Paste(dst, tile, image.Pt(x, 0))
	}
	return dst
}

// HealthBar lays out slots empty hearts, covers the first full of them with
// full hearts and then draws partialPx columns of one more full heart.
func HealthBar(full, empty image.Image, slots, fullCount, partialPx int) *image.NRGBA {
	fb := full.Bounds()
	w, h := fb.Dx(), fb.Dy()
	if slots < 0 {
		slots = 0
	}

	dst := imaging.New(max(w*slots, 1), h, color.NRGBA{})
	for i := 0; i < slots; i++ {
		dst = imaging.Paste(dst, empty, image.Pt(w*i, 0))
	}
	for i := 0; i < fullCount; i++ {
		dst = imaging.Paste(dst, full, image.Pt(w*i, 0))
	}
	if partialPx > 0 {
		part := imaging.Crop(full, image.Rect(fb.Min.X, fb.Min.Y, fb.Min.X+partialPx, fb.Max.Y))
		dst = imaging.Paste(dst, part, image.Pt(w*fullCount, 0))
	}
	return dst
}
