//go:build screen

package display

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"

	"github.com/d21d3q/framebuffer"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

const fontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSansMono-Bold.ttf"

// FramebufferSupported returns whether framebuffer support is compiled in.
func FramebufferSupported() bool {
	return true
}

// Framebuffer implements Display by drawing the character grid onto a
// Linux framebuffer device with gg.
type Framebuffer struct {
	dc              *gg.Context
	pixBuffer       []byte
	backBuffer      []byte
	rgbaImage       *image.RGBA
	width           int
	height          int
	lineLengthBytes int
	cellW           float64
	cellH           float64
}

func newFramebuffer(cfg Config) (*Framebuffer, error) {
	device := cfg.Device
	if device == "" {
		device = "/dev/fb0"
	}

	fbLowLevel, err := framebuffer.OpenFrameBuffer(device, os.O_RDWR)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fbLowLevel.VarScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fbLowLevel.FixScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get fixed screen info: %w", err)
	}

	f := &Framebuffer{
		width:           int(varInfo.XRes),
		height:          int(varInfo.YRes),
		lineLengthBytes: int(fixedInfo.LineLength),
	}
	f.pixBuffer, err = fbLowLevel.Pixels()
	if err != nil {
		return nil, fmt.Errorf("get pixel data: %w", err)
	}
	f.backBuffer = make([]byte, f.height*f.lineLengthBytes)
	f.cellW = float64(f.width) / float64(Cols)
	f.cellH = float64(f.height) / float64(Rows)

	log.Printf("Display: framebuffer %dx%d, %d bpp, stride %d bytes",
		f.width, f.height, varInfo.BitsPerPixel, f.lineLengthBytes)

	f.rgbaImage = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.dc = gg.NewContextForRGBA(f.rgbaImage)
	if err := f.dc.LoadFontFace(fontPath, f.cellH*0.8); err != nil {
		log.Printf("Display: failed to load font: %v", err)
	}

	if cfg.Splash != "" {
		f.splash(cfg.Splash)
	}
	return f, nil
}

// splash draws a startup image scaled to the framebuffer size.
func (f *Framebuffer) splash(path string) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("Display: open splash %s: %v", path, err)
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		log.Printf("Display: decode splash %s: %v", path, err)
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	copy(f.rgbaImage.Pix, scaled.Pix)
	f.flush()
}

// Update implements Display.Update.
func (f *Framebuffer) Update(cmds []Command) error {
	grid := Compose(cmds)

	f.dc.SetRGB(0, 0, 0)
	f.dc.DrawRectangle(0, 0, float64(f.width), float64(f.height))
	f.dc.Fill()

	f.dc.SetRGB(1, 1, 1)
	for r, line := range grid.Lines() {
		for c, ch := range line {
			if ch == ' ' {
				continue
			}
			x := (float64(c) + 0.5) * f.cellW
			y := (float64(r) + 0.5) * f.cellH
			f.dc.DrawStringAnchored(string(ch), x, y, 0.5, 0.5)
		}
	}

	f.flush()
	return nil
}

// flush converts the RGBA image to RGB565 and copies it to the device.
func (f *Framebuffer) flush() {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b, _ := f.rgbaImage.At(x, y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (y * f.lineLengthBytes) + (x * 2)
			if fbIdx+1 < len(f.backBuffer) {
				binary.LittleEndian.PutUint16(f.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(f.pixBuffer, f.backBuffer)
}

// Release implements Display.Release.
func (f *Framebuffer) Release() error {
	for i := range f.pixBuffer {
		f.pixBuffer[i] = 0
	}
	return nil
}
