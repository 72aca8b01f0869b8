// seehuhn.de/go/sketchpad - a freehand drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Format selects the file format of an export.
type Format string

const (
	// PNG writes a PNG image.
	PNG Format = "png"

	// PDF writes a single-page PDF file showing the PNG image at a
	// resolution of 72 pixels per inch.
	PDF Format = "pdf"
)

// ParseFormat converts a format name, as used in configuration files and
// requests, to a Format. The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Ext returns the file name extension for f, without the leading dot.
func (f Format) Ext() string {
	return string(f)
}

// MediaType returns the MIME type of f.
func (f Format) MediaType() string {
	switch f {
	case PDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// encode writes img to w in format f.
func encode(w io.Writer, img image.Image, f Format, title string) error {
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case PDF:
		return encodePDF(w, img, title)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

func encodePDF(w io.Writer, img image.Image, title string) error {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return err
	}

	// one PDF point per pixel
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	doc.SetCreator("sketchpad", true)
	doc.SetTitle(title, true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("sketch", opt, buf)
	doc.ImageOptions("sketch", 0, 0, wd, ht, false, opt, 0, "")
	if doc.Err() {
		return doc.Error()
	}
	return doc.Output(w)
}
