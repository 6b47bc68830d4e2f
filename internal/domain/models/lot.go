package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors surfaced by the core services.
var (
	ErrLotNotFound    = errors.New("lote no encontrado")
	ErrRecordNotFound = errors.New("registro no encontrado")
	ErrInvalidLotCode = errors.New("codigo de lote invalido")
	ErrInvalidInput   = errors.New("datos invalidos")
)

// Stage is the furthest-progressed lifecycle step inferred for a lot.
type Stage string

const (
	StagePending    Stage = "pending"
	StageExtraction Stage = "extraction"
	StageLab        Stage = "lab"
	StagePlant      Stage = "plant"
	StageShipping   Stage = "shipping"
	StageSold       Stage = "sold"
)

// StageFlags records which lifecycle steps have supporting documents.
// Flags are monotonic within a single inference pass: a later flag is never
// set while an earlier one is false.
type StageFlags struct {
	Extraction bool `json:"extraction"`
	Lab        bool `json:"lab"`
	Plant      bool `json:"plant"`
	Shipping   bool `json:"shipping"`
	Sold       bool `json:"sold"`
}

// StageStatus is the result of stage inference over a lot aggregate.
type StageStatus struct {
	Stages        StageFlags `json:"stages"`
	CurrentStage  Stage      `json:"current_stage"`
	StatusMessage string     `json:"status_message"`
}

// LotAggregate is the per-lookup assembly of every record sharing a lot code.
// It is a read-time projection, recomputed fresh on every lookup and never
// persisted. Degraded lists the collections whose query failed and were
// treated as empty.
type LotAggregate struct {
	LotCode    string             `json:"lote"`
	Extraction *ExtractionRecord  `json:"extraccion"`
	Lab        []LabAnalysis      `json:"laboratorio"`
	Plant      []PlantRun         `json:"planta"`
	Shipping   []ShippingRecord   `json:"despachos"`
	Degraded   []string           `json:"degradado,omitempty"`
}

// Event is a single entry in a lot's reconstructed timeline.
type Event struct {
	Stage     Stage      `json:"stage"`
	Label     string     `json:"label"`
	Date      string     `json:"date"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Details   string     `json:"details"`
	Location  string     `json:"location,omitempty"`
}

// LotTrace bundles everything the traceability view renders for one lot.
type LotTrace struct {
	LotAggregate
	Status  StageStatus `json:"status"`
	History []Event     `json:"historial"`
}

var lotCodePattern = regexp.MustCompile(`^[A-Z]-[0-9]{3}$`)

// LotCode is a validated lot identifier. The store keeps lot codes as plain
// strings; validation applies only at data-entry boundaries so legacy codes
// stay reachable on lookup.
type LotCode string

// ParseLotCode validates the conventional format: one letter, hyphen, three
// digits (e.g. "O-123"). Input is trimmed and upper-cased.
func ParseLotCode(raw string) (LotCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !lotCodePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLotCode, raw)
	}
	return LotCode(code), nil
}

func (c LotCode) String() string { return string(c) }
