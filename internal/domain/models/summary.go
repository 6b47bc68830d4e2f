package models

import "time"

// DailySummary aggregates one operating day across collections. Persisted to
// the daily_summaries collection by the scheduler and mirrored to the
// management spreadsheet.
type DailySummary struct {
	Date              string    `bson:"fecha" json:"fecha"`
	ExtractionCount   int       `bson:"num_extracciones" json:"num_extracciones"`
	ExtractedTonnes   float64   `bson:"toneladas_extraidas" json:"toneladas_extraidas"`
	LabCount          int       `bson:"num_analisis" json:"num_analisis"`
	LabApproved       int       `bson:"analisis_aprobados" json:"analisis_aprobados"`
	PlantRunCount     int       `bson:"num_producciones" json:"num_producciones"`
	ProducedKilograms float64   `bson:"kg_producidos" json:"kg_producidos"`
	ShipmentCount     int       `bson:"num_despachos" json:"num_despachos"`
	ShippedKilograms  float64   `bson:"kg_despachados" json:"kg_despachados"`
	LotsSold          int       `bson:"lotes_vendidos" json:"lotes_vendidos"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
