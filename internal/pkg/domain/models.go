package domain

import (
	"time"
)

//Point is a geographic position in EPSG:4326
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewPoint(latitude, longitude float64) Point {
	return Point{Lat: latitude, Lon: longitude}
}

//Thing is a sensor station together with the datastreams it publishes.
//DatastreamIDs[i] and ObservedProperties[i] describe the same datastream.
type Thing struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Location           Point    `json:"location"`
	DatastreamIDs      []string `json:"datastreamIds"`
	ObservedProperties []string `json:"observedProperties"`
}

//Observation ...
type Observation struct {
	Time   time.Time `json:"time"`
	Result float64   `json:"result"`
}

//ObservationSeries holds the observations of one datastream, ascending by time
type ObservationSeries struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Observations []Observation `json:"observations"`
}
