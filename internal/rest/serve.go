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

package rest

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JunlongH/lutinvert/internal/invert"
	"github.com/JunlongH/lutinvert/internal/lut"
)

// Runs LUT inversion as a REST service. POST a .cube file body to
// /api/v1/invert and receive the inverted .cube back; optional query
// parameters: size (output grid override) and verify=1 (append round-trip
// diagnostics as trailing comment lines).
func Serve() {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",   getPing)
			v1.POST("/invert", postInvert)
		}
	}
	r.Run() // listen and serve on 0.0.0.0:8080
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func postInvert(c *gin.Context) {
	fwd, err:=lut.ReadCube(c.Request.Body)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outSize:=0
	if s:=c.Query("size"); s!="" {
		outSize, err=strconv.Atoi(s)
		if err!=nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid size %q", s)})
			return
		}
	}

	inv, report, err:=invert.Invert(fwd, outSize, runtime.GOMAXPROCS(0), io.Discard)
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w:=c.Writer
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)

	if err:=inv.WriteCube(w); err!=nil {
		fmt.Fprintf(w, "\n# error writing LUT: %s\n", err.Error())
		return
	}
	fmt.Fprintf(w, "\n# %d of %d nodes above error threshold %g, max error %.6g\n",
		report.HighErrorNodes, report.Nodes, invert.HighErrorThreshold, report.MaxError)

	if c.Query("verify")=="1" {
		stats:=invert.VerifyRoundTrip(fwd, inv, 100, io.Discard)
		fmt.Fprintf(w, "# round trip over %d samples: mean %.6f max %.6f stddev %.6f (%s)\n",
			stats.Samples, stats.Mean, stats.Max, stats.StdDev, stats.Quality())
	}
	w.(http.Flusher).Flush()
}
