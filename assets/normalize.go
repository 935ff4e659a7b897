package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const jpegQuality = 85

// normalize decodes fetched image data, corrects JPEG EXIF orientation,
// downscales to the configured maximum dimension, and re-encodes. WebP input
// is transcoded to JPEG since the document format cannot embed it. The
// returned MIME is always image/jpeg or image/png.
func (r *Resolver) normalize(data []byte, mime string) ([]byte, string, error) {
	var img image.Image
	var err error

	switch mime {
	case MIMEPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case MIMEWebP:
		img, err = webp.Decode(bytes.NewReader(data))
		mime = MIMEJPEG
	default:
		img, err = jpeg.Decode(bytes.NewReader(data))
		if err == nil {
			img = correctOrientation(img, orientationOf(data))
		}
		mime = MIMEJPEG
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	img = r.downscale(img)

	var buf bytes.Buffer
	if mime == MIMEPNG {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", fmt.Errorf("encoding image: %w", err)
	}

	return buf.Bytes(), mime, nil
}

// downscale shrinks an image so its longest side is at most the configured
// maximum dimension, preserving aspect ratio. Smaller images pass through.
func (r *Resolver) downscale(img image.Image) image.Image {
	if r.maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= r.maxDim && h <= r.maxDim {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = r.maxDim
		nh = h * r.maxDim / w
	} else {
		nh = r.maxDim
		nw = w * r.maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// orientationOf extracts the EXIF orientation from JPEG data, defaulting to 1
// when no usable EXIF block is present.
func orientationOf(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// correctOrientation bakes the EXIF orientation into the pixel data so the
// embedded image always displays upright.
func correctOrientation(img image.Image, orientation int) image.Image {
	if orientation <= 1 || orientation > 8 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	set := func(dst *image.RGBA, fn func(x, y int) (int, int)) image.Image {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx, dy := fn(x, y)
				dst.Set(dx, dy, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	}

	switch orientation {
	case 2: // flip horizontal
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return w - 1 - x, y })
	case 3: // rotate 180
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4: // flip vertical
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // transpose
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return y, x })
	case 6: // rotate 90 clockwise
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return h - 1 - y, x })
	case 7: // transverse
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8: // rotate 270 clockwise
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return y, w - 1 - x })
	}
	return img
}
