package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/internal/msgcat"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func near(t *testing.T, img image.Image, x, y int, want color.RGBA) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	got := [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
	exp := [3]int{int(want.R), int(want.G), int(want.B)}
	for i := range got {
		require.InDelta(t, exp[i], got[i], 3, "pixel %d,%d = %v, want %v", x, y, got, exp)
	}
}

var (
	dark  = color.RGBA{0xd1, 0x8b, 0x47, 0xff}
	light = color.RGBA{0xff, 0xce, 0x9e, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
)

func TestRenderPNGPerViewer(t *testing.T) {
	s := match.NewStore(nil, nil)
	r := NewRenderer(msgcat.MustDefault(), DefaultOptions())
	ctx := context.Background()

	whiteImg := decode(t, mustRender(t, r, ctx, s.ViewAs(hexchess.White)))
	w, h := r.Size()
	require.Equal(t, image.Rect(0, 0, w, h), whiteImg.Bounds())
	require.Equal(t, 608, w)
	require.Equal(t, 748, h)

	// Cell 0:0 centre; empty in both frames.
	near(t, whiteImg, 44, 522, dark)
	// Beside the letter on the white king's disc at 6:0.
	near(t, whiteImg, 371, 650, white)

	blackImg := decode(t, mustRender(t, r, ctx, s.ViewAs(hexchess.Black)))
	near(t, blackImg, 44, 522, light)
	// Black's king sits at 4:0 in its own frame.
	near(t, blackImg, 267, 650, black)
}

func mustRender(t *testing.T, r *Renderer, ctx context.Context, v match.View) []byte {
	t.Helper()
	raw, err := r.RenderPNG(ctx, v)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
	return raw
}

func TestSVGHighlightsLastMove(t *testing.T) {
	r := NewRenderer(nil, Options{Scale: 2})
	b := hexchess.StartingBoard()
	plain := r.SVG(b, nil)
	require.Equal(t, 91, strings.Count(plain, "<polygon"))
	require.Equal(t, 36, strings.Count(plain, "<circle"))

	last := &hexchess.Move{From: hexchess.Coords{File: 4, Rank: 3}, To: hexchess.Coords{File: 4, Rank: 5}}
	marked := r.SVG(b, last)
	require.Equal(t, 2, strings.Count(marked, `stroke="#2e7d32"`))
}

func TestRenderPNGRejectsMissingBoard(t *testing.T) {
	r := NewRenderer(nil, DefaultOptions())
	_, err := r.RenderPNG(context.Background(), match.View{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := match.NewStore(nil, nil)
	_, err = r.RenderPNG(ctx, s.ViewAs(hexchess.White))
	require.ErrorIs(t, err, context.Canceled)
}
