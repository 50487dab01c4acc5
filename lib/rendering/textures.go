package rendering

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/fosdem/layertunnel/lib/texture"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var TextureUploadCounter uint64

// Texture is the GPU copy of a texture.Source. Bind uploads a new image when
// the source has changed since the last frame.
type Texture struct {
	ID     uint32
	Width  int
	Height int
	Source *texture.Source
}

func NewTexture(src *texture.Source) *Texture {
	t := &Texture{Source: src}
	img, _ := src.Take()
	if img == nil {
		img = src.Image()
	}
	t.Width = img.Bounds().Dx()
	t.Height = img.Bounds().Dy()
	t.ID = SetupRGBATexture(t.Width, t.Height, gl.RGBA)
	t.Upload(img)
	return t
}

// Upload replaces the texture contents, reallocating when the size changed
func (t *Texture) Upload(img *image.NRGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != t.Width || h != t.Height {
		gl.DeleteTextures(1, &t.ID)
		t.Width, t.Height = w, h
		t.ID = SetupRGBATexture(w, h, gl.RGBA)
		slog.Info(fmt.Sprintf("Texture resized to %dx%d", w, h), slog.String("module", "rendering"))
	}
	SendTextureToGPU(t.ID, 0, w, h, gl.RGBA, img.Pix)
}

func (t *Texture) Bind() {
	if img, changed := t.Source.Take(); changed {
		t.Upload(img)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}

func SetupRGBATexture(width int, height int, packing uint32) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	borderColor := mgl32.Vec4{0, 0, 0, 0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	buf := make([]uint8, width*height*4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		packing,
		gl.UNSIGNED_BYTE,
		gl.Ptr(&buf[0]),
	)
	return id
}

func SendTextureToGPU(texID uint32, offset int, w int, h int, channelType uint32, data []byte) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + offset))
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0, 0, 0,
		int32(w), int32(h),
		channelType, gl.UNSIGNED_BYTE, gl.Ptr(data),
	)
	TextureUploadCounter += uint64(len(data))
}
