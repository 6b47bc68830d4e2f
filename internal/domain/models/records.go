package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Material identifies the extracted mineral.
const (
	MaterialGold   = "oro"
	MaterialCopper = "cobre"
)

// Material condition at extraction time.
const (
	ConditionWet = "humedo"
	ConditionDry = "seco"
	ConditionRaw = "bruto"
)

// Plant shift.
const (
	ShiftMorning   = "manana"
	ShiftAfternoon = "tarde"
	ShiftNight     = "noche"
)

// ExtractionRecord captures a field extraction event. The bson field names are
// the persisted wire contract; existing documents must keep round-tripping.
type ExtractionRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Zone      string             `bson:"zona" json:"zona"`
	Material  string             `bson:"material" json:"material"`
	LotCode   string             `bson:"lote" json:"lote"`
	Date      string             `bson:"fecha" json:"fecha"`
	Tonnes    float64            `bson:"cantidad_t" json:"cantidad_t"`
	Kilograms float64            `bson:"cantidad_kg" json:"cantidad_kg"`
	Operator  string             `bson:"operador" json:"operador"`
	Condition string             `bson:"estado_material" json:"estado_material"`
	Notes     string             `bson:"observaciones" json:"observaciones"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// LabAnalysis captures a laboratory result for a lot. Result is free text,
// conventionally "Aprobado" or "Rechazado".
type LabAnalysis struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Zone           string             `bson:"zona" json:"zona"`
	LotCode        string             `bson:"lote" json:"lote"`
	Operator       string             `bson:"operador" json:"operador"`
	Material       string             `bson:"material" json:"material"`
	SubmissionDate string             `bson:"fecha_envio" json:"fecha_envio"`
	Result         string             `bson:"resultado" json:"resultado"`
	Purity         float64            `bson:"pureza" json:"pureza"`
	Humidity       float64            `bson:"humedad" json:"humedad"`
	Notes          string             `bson:"observaciones" json:"observaciones"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// PlantRun captures a plant production entry for a lot.
type PlantRun struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Zone        string             `bson:"zona" json:"zona"`
	Material    string             `bson:"material" json:"material"`
	Operator    string             `bson:"operador" json:"operador"`
	Condition   string             `bson:"condicion" json:"condicion"`
	Date        string             `bson:"fecha" json:"fecha"`
	Tonnes      float64            `bson:"cantidad_t" json:"cantidad_t"`
	Kilograms   float64            `bson:"cantidad_kg" json:"cantidad_kg"`
	FinalPurity float64            `bson:"pureza_final" json:"pureza_final"`
	Shift       string             `bson:"turno" json:"turno"`
	LotCode     string             `bson:"lote" json:"lote"`
	Notes       string             `bson:"observaciones" json:"observaciones"`
	Sold        bool               `bson:"vendido" json:"vendido"`
	SaleDate    *time.Time         `bson:"fecha_venta" json:"fecha_venta"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ShippingRecord captures a dispatch of processed material, or a synthetic
// record created by the sale confirmation workflow on a direct sale.
type ShippingRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShipDate    string             `bson:"fecha_despacho" json:"fecha_despacho"`
	LotCode     string             `bson:"lote" json:"lote"`
	Product     string             `bson:"producto" json:"producto"`
	Kilograms   float64            `bson:"cantidad_kg" json:"cantidad_kg"`
	FinalPurity float64            `bson:"pureza_final" json:"pureza_final"`
	Client      string             `bson:"cliente_destino" json:"cliente_destino"`
	Carrier     string             `bson:"transportista" json:"transportista"`
	Sold        bool               `bson:"vendido" json:"vendido"`
	SaleDate    *time.Time         `bson:"fecha_venta" json:"fecha_venta"`
	Notes       string             `bson:"observaciones" json:"observaciones"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// PlantFailure records a machinery failure during a plant run. Descriptive
// detail only; it plays no part in stage inference.
type PlantFailure struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantRunID    string             `bson:"planta_id" json:"planta_id"`
	Equipment     string             `bson:"equipo" json:"equipo"`
	Description   string             `bson:"descripcion" json:"descripcion"`
	Date          string             `bson:"fecha" json:"fecha"`
	DowntimeHours float64            `bson:"horas_parada" json:"horas_parada"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// SupplyConsumption records supplies consumed by a plant run.
type SupplyConsumption struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantRunID string             `bson:"planta_id" json:"planta_id"`
	Supply     string             `bson:"insumo" json:"insumo"`
	Quantity   float64            `bson:"cantidad" json:"cantidad"`
	Unit       string             `bson:"unidad" json:"unidad"`
	Date       string             `bson:"fecha" json:"fecha"`
	Notes      string             `bson:"observaciones" json:"observaciones"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
