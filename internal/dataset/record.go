// Package dataset loads and partitions the bicycle-rental records.
package dataset

// NumColumns is the fixed column count of the source file:
// ten numeric feature columns followed by the boolean label.
const NumColumns = 11

// Column names in file order. The loader binds fields positionally; the
// header row, when present, is skipped without being matched by name.
var ColumnNames = []string{
	"season", "month", "hour", "holiday", "weekday", "workingday",
	"weathercondition", "temperature", "humidity", "windspeed", "rentaltype",
}

// RentalRecord is one row of the source file. Immutable once loaded.
type RentalRecord struct {
	Season           float64
	Month            float64
	Hour             float64
	Holiday          float64
	Weekday          float64
	WorkingDay       float64
	WeatherCondition float64
	Temperature      float64
	Humidity         float64
	Windspeed        float64

	RentalType bool
}

// Label returns the record label as 0/1.
func (r RentalRecord) Label() float64 {
	if r.RentalType {
		return 1
	}
	return 0
}

// Dataset is an ordered sequence of records.
type Dataset []RentalRecord

// Labels returns the label column as a 0/1 slice in record order.
func (d Dataset) Labels() []float64 {
	labels := make([]float64, len(d))
	for i, r := range d {
		labels[i] = r.Label()
	}
	return labels
}
