package main

import (
	"fmt"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

type color struct {
	R, G, B float64
}

var colors = []color{
	{1, 0.5, 0},
	{0.2, 1, 0.2},
	{0.5, 0.85, 1},
	{0.8, 0.6, 0.05},
	{1, 0.6, 0.7},
}

const (
	margin     = 20.0
	labelWidth = 120.0
)

type renderer struct {
	pixelsPerBeat float64
	noteHeight    float64
	ticksPerBeat  uint16
	maxWidth      int
	maxHeight     int
}

func (rd *renderer) x(ticks uint64) float64 {
	tpb := float64(rd.ticksPerBeat)
	if tpb == 0 {
		tpb = 1
	}
	return labelWidth + float64(ticks)/tpb*rd.pixelsPerBeat
}

func (rd *renderer) render(r *roll) (*gg.Context, error) {
	rows := 1
	if len(r.Spans) > 0 {
		rows = int(r.High-r.Low) + 1
	}

	w := rd.x(r.Length) + margin
	h := float64(rows)*rd.noteHeight + 2*margin
	if w > float64(rd.maxWidth) || h > float64(rd.maxHeight) {
		return nil, fmt.Errorf("piano roll %.0fx%.0f px exceeds limit %dx%d", w, h, rd.maxWidth, rd.maxHeight)
	}

	dc := gg.NewContext(int(w), int(h))
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.Clear()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 10}))

	rd.drawBeats(dc, r.Length, h)

	for _, s := range r.Spans {
		c := colors[s.Track%len(colors)]
		shade := 0.4 + 0.6*float64(s.Velocity)/127
		dc.SetRGB(c.R*shade, c.G*shade, c.B*shade)

		y := margin + float64(r.High-s.Note)*rd.noteHeight
		width := rd.x(s.End) - rd.x(s.Start)
		if width < 1 {
			width = 1
		}
		dc.DrawRectangle(rd.x(s.Start), y, width, rd.noteHeight-1)
		dc.Fill()
	}

	rd.drawLabels(dc, r)
	return dc, nil
}

func (rd *renderer) drawBeats(dc *gg.Context, length uint64, h float64) {
	if rd.ticksPerBeat == 0 {
		return
	}
	dc.SetLineWidth(1)
	for beat := uint64(0); beat*uint64(rd.ticksPerBeat) <= length; beat++ {
		if beat%4 == 0 {
			dc.SetRGB(0.35, 0.35, 0.35)
		} else {
			dc.SetRGB(0.2, 0.2, 0.2)
		}
		x := rd.x(beat * uint64(rd.ticksPerBeat))
		dc.DrawLine(x, margin, x, h-margin)
		dc.Stroke()
	}
}

func (rd *renderer) drawLabels(dc *gg.Context, r *roll) {
	tracks := make([]int, 0, len(r.TrackNames))
	for t := range r.TrackNames {
		tracks = append(tracks, t)
	}
	sort.Ints(tracks)

	for i, t := range tracks {
		c := colors[t%len(colors)]
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawString(r.TrackNames[t], 4, margin+float64(i+1)*14)
	}
}
