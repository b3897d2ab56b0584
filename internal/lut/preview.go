// Copyright (C) 2026 The lutinvert authors
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

package lut

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/tiff"
)

// Writes a 16-bit TIFF preview of the LUT to the named file
func (l *LUT) WriteTIFF16ToFile(fileName string) error {
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	return l.WriteTIFF16(writer)
}

// Writes a 16-bit TIFF preview of the LUT: one tile per blue slice, laid out
// left to right, each tile showing the red/green plane at node resolution.
// Tiles are pixel-doubled until at least 64px wide so small LUTs stay visible
func (l *LUT) WriteTIFF16(writer io.Writer) error {
	scale:=1
	for scale*l.Size<64 { scale*=2 }
	tile:=l.Size*scale
	width, height:=tile*l.Size, tile
	img:=image.NewRGBA64(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})

	for b:=0; b<l.Size; b++ {
		xoffset:=b*tile
		for g:=0; g<l.Size; g++ {
			for r:=0; r<l.Size; r++ {
				v:=l.At(r,g,b)
				c:=color.RGBA64{
					R: uint16(Clamp01(v[0])*65535+0.5),
					G: uint16(Clamp01(v[1])*65535+0.5),
					B: uint16(Clamp01(v[2])*65535+0.5),
					A: 65535,
				}
				for dy:=0; dy<scale; dy++ {
					for dx:=0; dx<scale; dx++ {
						img.SetRGBA64(xoffset+r*scale+dx, (l.Size-1-g)*scale+dy, c)
					}
				}
			}
		}
	}
	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
