package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

type CRS int

const (
	//EPSG4326 is the geographic lon/lat system used for storage and queries
	EPSG4326 CRS = 4326
	//EPSG3857 is the web mercator system used by the map display surface
	EPSG3857 CRS = 3857
)

func (c CRS) String() string {
	return fmt.Sprintf("EPSG:%d", int(c))
}

//Geometry is a closed polygon ring tagged with the reference system of its coordinates
type Geometry struct {
	CRS  CRS
	Ring orb.Ring
}
