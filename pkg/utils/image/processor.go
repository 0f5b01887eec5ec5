package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
)

const MaxImageSize = 10 * 1024 * 1024 // 10MB

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcessImage decodes an uploaded image and re-encodes it at upload
// quality. Returns the encoded buffer and its content type.
func ProcessImage(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	if file.Size > MaxImageSize {
		return nil, "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxImageSize)
	}

	if !AllowedImageTypes[file.Header.Get("Content-Type")] {
		return nil, "", fmt.Errorf("invalid file type. Allowed types are: jpeg, png, webp")
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %v", err)
	}

	buf := new(bytes.Buffer)

	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, img)
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	if err != nil {
		return nil, "", fmt.Errorf("could not encode image: %v", err)
	}

	return buf, fmt.Sprintf("image/%s", format), nil
}
