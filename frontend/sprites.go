package frontend

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"wavesurvivor/game"
)

//go:embed assets/player.svg
var playerSVG []byte

//go:embed assets/enemy.svg
var enemySVG []byte

//go:embed assets/projectile.svg
var projectileSVG []byte

// spriteSource is the artwork for one sprite kind. Sizes are the native
// pixel sizes the core's sprite scales are measured against.
type spriteSource struct {
	name        string
	svg         []byte
	size        int
	placeholder color.RGBA
}

var spriteSources = map[game.SpriteKind]spriteSource{
	game.SpritePlayer:     {name: "player", svg: playerSVG, size: 48, placeholder: color.RGBA{100, 150, 255, 255}},
	game.SpriteEnemy:      {name: "enemy", svg: enemySVG, size: 256, placeholder: color.RGBA{255, 100, 100, 255}},
	game.SpriteProjectile: {name: "projectile", svg: projectileSVG, size: 32, placeholder: color.RGBA{255, 200, 0, 255}},
}

// Sprites holds the GPU images for every sprite kind
type Sprites struct {
	images map[game.SpriteKind]*ebiten.Image
}

// LoadSprites rasterizes the embedded artwork. A sprite that fails to
// rasterize is replaced by a placeholder and logged; it never aborts startup.
func LoadSprites(logger zerolog.Logger) *Sprites {
	s := &Sprites{images: make(map[game.SpriteKind]*ebiten.Image, len(spriteSources))}
	for kind, img := range rasterizeSprites(logger) {
		s.images[kind] = ebiten.NewImageFromImage(img)
	}
	return s
}

// Image returns the artwork for kind
func (s *Sprites) Image(kind game.SpriteKind) *ebiten.Image {
	return s.images[kind]
}

// rasterizeSprites converts every sprite source to a CPU image
func rasterizeSprites(logger zerolog.Logger) map[game.SpriteKind]image.Image {
	out := make(map[game.SpriteKind]image.Image, len(spriteSources))
	for kind, src := range spriteSources {
		img, err := svgToImage(src.svg, src.size, src.size)
		if err != nil {
			logger.Warn().Err(err).Str("sprite", src.name).Msg("using placeholder sprite")
			img = placeholderImage(src.size, src.size, src.placeholder)
		}

		// Optionally save PNG for debugging
		if os.Getenv("DEBUG_SPRITES") == "1" {
			saveDebugPNG(logger, img, "debug_"+src.name+".png")
		}
		out[kind] = img
	}
	return out
}

// svgToImage rasterizes SVG data into a width x height image
func svgToImage(svgData []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// placeholderImage draws a right-pointing triangle with a dark outline
func placeholderImage(width, height int, clr color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	outline := color.RGBA{0, 0, 0, 255}

	cx := float64(width) / 2
	cy := float64(height) / 2
	halfW := float64(width) / 3
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			relX := float64(x) - cx
			relY := float64(y) - cy
			if relX < -halfW || relX > halfW {
				continue
			}
			// Half-height of the triangle shrinks toward the tip on the right
			edge := float64(height) / 3 * (halfW - relX) / (2 * halfW)
			switch {
			case math.Abs(relY) < edge:
				img.Set(x, y, clr)
			case math.Abs(relY) < edge+1:
				img.Set(x, y, outline)
			}
		}
	}
	return img
}

// saveDebugPNG writes img to filename
func saveDebugPNG(logger zerolog.Logger, img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("failed to create debug PNG")
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("failed to encode debug PNG")
	}
}
