package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1024

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// Result is a normalized upload ready for the blob store.
type Result struct {
	Data []byte
	Ext  string
	MIME string
}

// Normalize prepares an uploaded image for storage. JPEG and PNG
// inputs (sniffed from bytes, not trusting the client) are downscaled
// to MaxDimension and re-encoded as JPEG. Anything else passes through
// untouched with its original extension: uploads are size-limited but
// not type-validated.
func Normalize(data []byte, origExt string) Result {
	detected := http.DetectContentType(data)
	passthrough := Result{Data: data, Ext: origExt, MIME: detected}

	if detected != "image/jpeg" && detected != "image/png" {
		return passthrough
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return passthrough
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return passthrough
	}

	return Result{Data: buf.Bytes(), Ext: ".jpg", MIME: "image/jpeg"}
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	// Calculate new dimensions preserving aspect ratio.
	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
