package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Gallery picks can be in any format the user's library holds.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// DefaultJPEGQuality is used when callers pass a quality outside [1, 100].
const DefaultJPEGQuality = 90

// Decode turns encoded image bytes into an image.Image. It understands JPEG,
// PNG, GIF, BMP, TIFF and WebP.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("frame: decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG encodes img as JPEG with the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("frame: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale caps the longest side of img at maxSide, preserving aspect
// ratio. Images already within bounds are returned unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// YUYVToImage converts a packed YUYV frame into an image.YCbCr. Width must be
// even.
func YUYVToImage(data []byte, width, height int) (image.Image, error) {
	if len(data) < width*height*2 {
		return nil, fmt.Errorf("frame: yuyv payload too short: %d bytes for %dx%d", len(data), width, height)
	}

	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio422)
	for y := 0; y < height; y++ {
		row := data[y*width*2:]
		for x := 0; x < width; x += 2 {
			i := x * 2
			yi := y*img.YStride + x
			ci := y*img.CStride + x/2
			img.Y[yi] = row[i]
			img.Cb[ci] = row[i+1]
			img.Y[yi+1] = row[i+2]
			img.Cr[ci] = row[i+3]
		}
	}
	return img, nil
}

// ToImage decodes a frame into an image.Image for still conversion.
func (f *Frame) ToImage() (image.Image, error) {
	switch f.Format {
	case FormatMJPEG:
		return Decode(f.Data)
	case FormatYUYV:
		return YUYVToImage(f.Data, f.Width, f.Height)
	case FormatRGBA:
		if len(f.Data) < f.Width*f.Height*4 {
			return nil, fmt.Errorf("frame: rgba payload too short: %d bytes for %dx%d", len(f.Data), f.Width, f.Height)
		}
		img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
		copy(img.Pix, f.Data)
		return img, nil
	default:
		return nil, fmt.Errorf("frame: unsupported format %q", f.Format)
	}
}
