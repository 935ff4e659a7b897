// Package propertymap composes a small location map for the technical
// section from OSM tiles, with the property point and optional boundary
// polygon drawn on top. Map generation is best-effort: any failure simply
// omits the map page, it never fails report generation.
package propertymap

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // tile decode support
	"image/png"
	"math"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/fogleman/gg"
	geojson "github.com/paulmach/go.geojson"
)

const (
	tileSize = 256
	maxTiles = 16
	maxZoom  = 19
)

// Composer fetches tiles and draws the map image.
type Composer struct {
	tileURL string // fmt pattern with zoom/x/y verbs
	client  *http.Client
	agent   string
}

// NewComposer builds a map composer. tileURL is a format string with three
// %d verbs (zoom, x, y).
func NewComposer(tileURL string, timeout time.Duration, userAgent string) *Composer {
	return &Composer{
		tileURL: tileURL,
		client:  &http.Client{Timeout: timeout},
		agent:   userAgent,
	}
}

// Compose renders a PNG map centered on the property. boundary may be a
// GeoJSON feature or geometry document outlining the property; when nil or
// unparseable only the point marker is drawn over a 1km box.
func (c *Composer) Compose(lat, lon float64, boundary []byte) ([]byte, error) {
	feature := parseBoundary(boundary)

	var zoom, xMin, xMax, yMin, yMax int
	var err error
	if feature != nil {
		zoom, xMin, xMax, yMin, yMax, err = boundsToTiles(feature)
	} else {
		zoom, xMin, xMax, yMin, yMax, err = kmBoxToTiles(lat, lon)
	}
	if err != nil {
		return nil, err
	}

	return c.draw(xMin, xMax, yMin, yMax, zoom, feature, lat, lon)
}

// parseBoundary decodes the optional boundary document, tolerating both a
// bare feature and a feature collection.
func parseBoundary(raw []byte) *geojson.Feature {
	if len(raw) == 0 {
		return nil
	}
	if f, err := geojson.UnmarshalFeature(raw); err == nil && f.Geometry != nil {
		return f
	}
	if fc, err := geojson.UnmarshalFeatureCollection(raw); err == nil && len(fc.Features) > 0 {
		return fc.Features[0]
	}
	log.Warn("unparseable property boundary, drawing point marker only")
	return nil
}

// kmBoxToTiles computes tile bounds for a 1km box centered on a point.
func kmBoxToTiles(lat, lon float64) (zoom, xMin, xMax, yMin, yMax int, err error) {
	if lat < -85 || lat > 85 || lon < -180 || lon > 180 {
		return 0, 0, 0, 0, 0, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}

	// 1 degree of latitude is ~111.32km; longitude shrinks by cos(lat).
	latDeg := 1.0 / 111.32
	lonDeg := 1.0 / (111.32 * math.Cos(lat*math.Pi/180.0))
	span := math.Max(latDeg, lonDeg)

	latMin, latMax := lat-span/2, lat+span/2
	lonMin, lonMax := lon-span/2, lon+span/2

	for z := maxZoom; z > 0; z-- {
		xMin, yMax = latLonToTile(latMin, lonMin, z)
		xMax, yMin = latLonToTile(latMax, lonMax, z)
		if (xMax-xMin+1)*(yMax-yMin+1) <= maxTiles {
			return z, xMin, xMax, yMin, yMax, nil
		}
	}
	return 1, xMin, xMax, yMin, yMax, nil
}

// boundsToTiles computes tile bounds covering a boundary feature.
func boundsToTiles(feature *geojson.Feature) (zoom, xMin, xMax, yMin, yMax int, err error) {
	latMin, latMax, lonMin, lonMax, err := featureBounds(feature)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}

	for z := maxZoom; z > 0; z-- {
		xMin, yMax = latLonToTile(latMin, lonMin, z)
		xMax, yMin = latLonToTile(latMax, lonMax, z)
		if (xMax-xMin+1)*(yMax-yMin+1) <= maxTiles {
			return z, xMin, xMax, yMin, yMax, nil
		}
	}
	return 1, xMin, xMax, yMin, yMax, nil
}

// featureBounds extracts the lat/lon envelope of a polygon feature.
func featureBounds(feature *geojson.Feature) (latMin, latMax, lonMin, lonMax float64, err error) {
	if feature.Geometry == nil || len(feature.Geometry.Polygon) == 0 || len(feature.Geometry.Polygon[0]) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("boundary feature has no polygon ring")
	}

	latMin, latMax = 90, -90
	lonMin, lonMax = 180, -180
	for _, pt := range feature.Geometry.Polygon[0] {
		lon, lat := pt[0], pt[1]
		latMin = math.Min(latMin, lat)
		latMax = math.Max(latMax, lat)
		lonMin = math.Min(lonMin, lon)
		lonMax = math.Max(lonMax, lon)
	}
	return latMin, latMax, lonMin, lonMax, nil
}

// latLonToTile converts coordinates to slippy-map tile indices.
func latLonToTile(lat, lon float64, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))
	x = int((lon + 180.0) / 360.0 * n)
	latRad := lat * math.Pi / 180.0
	y = int((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n)
	return x, y
}

// draw fetches every tile in the bound, stitches them, and overlays the
// boundary polygon and property marker.
func (c *Composer) draw(xMin, xMax, yMin, yMax, zoom int, feature *geojson.Feature, lat, lon float64) ([]byte, error) {
	cols := xMax - xMin + 1
	rows := yMax - yMin + 1

	dst := image.NewRGBA(image.Rect(0, 0, tileSize*cols, tileSize*rows))
	dc := gg.NewContextForRGBA(dst)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tile, err := c.fetchTile(xMin+col, yMin+row, zoom)
			if err != nil {
				return nil, fmt.Errorf("fetching map tile: %w", err)
			}
			dc.DrawImage(tile, col*tileSize, row*tileSize)
		}
	}

	project := func(lat, lon float64) (float64, float64) {
		n := math.Exp2(float64(zoom))
		fx := (lon + 180.0) / 360.0 * n
		latRad := lat * math.Pi / 180.0
		fy := (1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n
		return (fx - float64(xMin)) * tileSize, (fy - float64(yMin)) * tileSize
	}

	// Boundary outline
	if feature != nil && len(feature.Geometry.Polygon) > 0 {
		dc.SetLineWidth(3)
		dc.SetRGBA(0.12, 0.23, 0.37, 0.9)
		ring := feature.Geometry.Polygon[0]
		for i, pt := range ring {
			x, y := project(pt[1], pt[0])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}

	// Property marker
	px, py := project(lat, lon)
	dc.SetRGBA(0.91, 0.30, 0.24, 1)
	dc.DrawCircle(px, py, 9)
	dc.Fill()
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawCircle(px, py, 4)
	dc.Fill()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fetchTile fetches one map tile.
func (c *Composer) fetchTile(x, y, zoom int) (image.Image, error) {
	url := fmt.Sprintf(c.tileURL, zoom, x, y)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile server returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	return img, nil
}
