// Package render draws the hex board as a PNG: cells go through an SVG
// document rasterised with oksvg, piece letters and the caption are drawn
// with a bitmap font on top.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/internal/msgcat"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Hexagon proportions in layout units: a is the flat top edge, b the
// horizontal run of a slanted edge, c half the cell height.
const (
	hexA = 9
	hexB = 4
	hexC = 8

	widthUnits  = 11*(hexA+hexB) + hexB
	heightUnits = 11 * hexC * 2
)

var cellFill = map[hexchess.CellColor]string{
	hexchess.Dark:  "#d18b47",
	hexchess.Mid:   "#e8ab6f",
	hexchess.Light: "#ffce9e",
}

type Options struct {
	// Scale is pixels per layout unit.
	Scale   int
	Padding int
	Caption bool
}

func DefaultOptions() Options {
	return Options{Scale: 4, Padding: 10, Caption: true}
}

type Renderer struct {
	cat  *msgcat.Catalog
	opts Options
}

func NewRenderer(cat *msgcat.Catalog, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	return &Renderer{cat: cat, opts: opts}
}

const captionHeight = 24

// Size returns the output dimensions in pixels.
func (r *Renderer) Size() (int, int) {
	w := widthUnits*r.opts.Scale + 2*r.opts.Padding
	h := heightUnits*r.opts.Scale + 2*r.opts.Padding
	if r.opts.Caption {
		h += captionHeight
	}
	return w, h
}

// RenderPNG draws v.Board as seen from its own orientation.
func (r *Renderer) RenderPNG(ctx context.Context, v match.View) ([]byte, error) {
	if v.Board == nil {
		return nil, fmt.Errorf("board is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, imagedraw.Src)

	icon, err := oksvg.ReadIconStream(strings.NewReader(r.SVG(v.Board, v.LastMove)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	r.drawLetters(img, v.Board)
	if r.opts.Caption {
		r.drawCaption(img, v)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type point struct{ x, y float64 }

// cellOrigin is the left vertex of the cell's bottom edge line, matching the
// browser client's layout: file 5 sits lowest, rank 0 at the bottom.
func (r *Renderer) cellOrigin(c hexchess.Coords) point {
	m := float64(r.opts.Scale)
	pad := float64(r.opts.Padding)
	bottom := pad + m*heightUnits
	x := pad + m*float64(c.File*(hexA+hexB))
	y := bottom - m*hexC*float64(abs(5-c.File)) - m*hexC*2*float64(c.Rank)
	return point{x, y}
}

func (r *Renderer) cellCenter(c hexchess.Coords) point {
	o := r.cellOrigin(c)
	m := float64(r.opts.Scale)
	return point{o.x + m*(hexB+hexA/2.0), o.y - m*hexC}
}

func (r *Renderer) hexPoints(c hexchess.Coords) string {
	o := r.cellOrigin(c)
	m := float64(r.opts.Scale)
	pts := []point{
		{o.x, o.y - m*hexC},
		{o.x + m*hexB, o.y},
		{o.x + m*(hexB+hexA), o.y},
		{o.x + m*(2*hexB+hexA), o.y - m*hexC},
		{o.x + m*(hexB+hexA), o.y - 2*m*hexC},
		{o.x + m*hexB, o.y - 2*m*hexC},
	}
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.x, p.y)
	}
	return strings.Join(parts, " ")
}

// SVG returns the board cells, piece discs and last-move outline as an SVG
// document sized to Size().
func (r *Renderer) SVG(b *hexchess.Board, last *hexchess.Move) string {
	w, h := r.Size()
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	radius := float64(r.opts.Scale) * hexC * 0.7
	for _, file := range b.Files {
		for _, cell := range file {
			fmt.Fprintf(&sb, `<polygon points="%s" fill="%s" stroke="#000000" stroke-width="1"/>`,
				r.hexPoints(cell.Coords), cellFill[cell.Color])
			if cell.Piece == nil {
				continue
			}
			fill, stroke := "#ffffff", "#000000"
			if cell.Piece.Color == hexchess.Black {
				fill, stroke = "#000000", "#ffffff"
			}
			ctr := r.cellCenter(cell.Coords)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`,
				ctr.x, ctr.y, radius, fill, stroke)
		}
	}
	if last != nil {
		for _, c := range []hexchess.Coords{last.From, last.To} {
			if !c.Valid() {
				continue
			}
			fmt.Fprintf(&sb, `<polygon points="%s" fill="none" stroke="#2e7d32" stroke-width="3"/>`, r.hexPoints(c))
		}
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

var pieceLetter = map[hexchess.PieceType]string{
	hexchess.Pawn:   "P",
	hexchess.Knight: "N",
	hexchess.Bishop: "B",
	hexchess.Rook:   "R",
	hexchess.Queen:  "Q",
	hexchess.King:   "K",
}

func (r *Renderer) drawLetters(img *image.RGBA, b *hexchess.Board) {
	face := basicfont.Face7x13
	for _, file := range b.Files {
		for _, cell := range file {
			if cell.Piece == nil {
				continue
			}
			clr := color.Color(color.Black)
			if cell.Piece.Color == hexchess.Black {
				clr = color.White
			}
			ctr := r.cellCenter(cell.Coords)
			drawer := &font.Drawer{Dst: img, Src: image.NewUniform(clr), Face: face}
			baseline := int(ctr.y) + (face.Ascent-face.Descent)/2
			drawCenteredText(drawer, pieceLetter[cell.Piece.Type], int(ctr.x), baseline)
		}
	}
}

func (r *Renderer) drawCaption(img *image.RGBA, v match.View) {
	viewer := string(v.Board.Orientation)
	key := "board.caption"
	if v.MoveCount == 0 {
		key = "board.caption_waiting"
	}
	data := map[string]any{"Viewer": viewer, "Moves": v.MoveCount, "ToMove": string(v.NextToMove)}
	text := r.cat.RenderOr(key, data, fmt.Sprintf("%s view", viewer))

	w, h := r.Size()
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: basicfont.Face7x13}
	drawCenteredText(drawer, text, w/2, h-captionHeight/2+4)
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	width := drawer.MeasureString(text).Ceil()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
