package component

import "image"

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// FramesFromSheet slices sheet into frameW×frameH cells read left-to-right,
// top-to-bottom, starting at cell start. count <= 0 reads every remaining
// cell. Cells that do not fit the sheet are skipped.
func FramesFromSheet(sheet image.Image, frameW, frameH, start, count int) []image.Image {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}
	sub, ok := sheet.(subImager)
	if !ok {
		return nil
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	total := cols * rows
	if start < 0 {
		start = 0
	}
	if start >= total {
		return nil
	}
	if count <= 0 || start+count > total {
		count = total - start
	}
	frames := make([]image.Image, 0, count)
	for i := start; i < start+count; i++ {
		col := i % cols
		row := i / cols
		x := bounds.Min.X + col*frameW
		y := bounds.Min.Y + row*frameH
		frames = append(frames, sub.SubImage(image.Rect(x, y, x+frameW, y+frameH)))
	}
	return frames
}
