package models

import "fmt"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Scan reads a WKT point ("POINT(lng lat)") as returned by ST_AsText.
func (l *Location) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		_, err := fmt.Sscanf(string(v), "POINT(%f %f)", &l.Lng, &l.Lat)
		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT(%f %f)", &l.Lng, &l.Lat)
		return err
	default:
		return fmt.Errorf("unsupported type for Location: %T", value)
	}
}

// WKT renders the location as a WKT point, longitude first.
func (l Location) WKT() string {
	return fmt.Sprintf("POINT(%f %f)", l.Lng, l.Lat)
}
