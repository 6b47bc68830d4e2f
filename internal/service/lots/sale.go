package lots

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/pkg/clients/alerts"
)

// Record types accepted by ConfirmSale.
const (
	RecordTypePlant    = "plant"
	RecordTypeShipping = "shipping"
)

// Placeholder values for a shipping record synthesized on a direct sale.
const (
	directSaleClient  = "Venta directa"
	directSaleCarrier = "Por confirmar"
)

// ErrUnknownRecordType indicates an unsupported record type argument.
var ErrUnknownRecordType = errors.New("tipo de registro desconocido")

var productNames = map[string]string{
	models.MaterialGold:   "Concentrado de oro",
	models.MaterialCopper: "Concentrado de cobre",
}

// ConfirmSale marks a plant or shipping record as sold and keeps both
// collections consistent: confirming a plant record ensures a shipping record
// exists for the lot, creating one with placeholder dispatch data when absent.
//
// Writes are sequential and best-effort. There is no rollback: if the shipping
// write succeeds and the source update fails, the caller sees the error and
// the store is left with shipping marked sold while the plant run is not.
func (s *Service) ConfirmSale(ctx context.Context, recordID, recordType string) error {
	now := s.now().UTC()

	switch recordType {
	case RecordTypePlant:
		run, err := s.repo.PlantRunByID(ctx, recordID)
		if err != nil {
			return err
		}

		shipping, err := s.repo.ShippingByLot(ctx, run.LotCode)
		if err != nil {
			return fmt.Errorf("consultar despachos del lote %s: %w", run.LotCode, err)
		}

		if len(shipping) == 0 {
			rec := &models.ShippingRecord{
				ShipDate:    now.Format(dateLayout),
				LotCode:     run.LotCode,
				Product:     productName(run.Material),
				Kilograms:   run.Kilograms,
				FinalPurity: run.FinalPurity,
				Client:      directSaleClient,
				Carrier:     directSaleCarrier,
				Sold:        true,
				SaleDate:    &now,
			}
			if _, err := s.repo.InsertShippingRecord(ctx, rec); err != nil {
				return fmt.Errorf("crear despacho de venta directa: %w", err)
			}
			s.logger.Info("despacho sintetico creado por venta directa",
				zap.String("lote", run.LotCode))
		} else {
			// Existing dispatch data (client, carrier) is preserved; only the
			// sold flag and sale timestamp change on the first match.
			if err := s.repo.MarkShippingRecordSold(ctx, shipping[0].ID.Hex(), now); err != nil {
				return fmt.Errorf("actualizar despacho existente: %w", err)
			}
		}

		if err := s.repo.MarkPlantRunSold(ctx, recordID, now); err != nil {
			return fmt.Errorf("actualizar produccion de origen: %w", err)
		}
		s.notifySale(ctx, run.LotCode)

	case RecordTypeShipping:
		rec, err := s.repo.ShippingRecordByID(ctx, recordID)
		if err != nil {
			return err
		}
		if err := s.repo.MarkShippingRecordSold(ctx, recordID, now); err != nil {
			return fmt.Errorf("actualizar despacho de origen: %w", err)
		}
		s.notifySale(ctx, rec.LotCode)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownRecordType, recordType)
	}

	return nil
}

// notifySale posts the webhook alert when one is configured. Best effort: a
// delivery failure is logged and never fails the confirmation.
func (s *Service) notifySale(ctx context.Context, lotCode string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, alerts.Event{
		Kind:    alerts.EventSaleConfirmed,
		LotCode: lotCode,
		Message: fmt.Sprintf("Venta confirmada para el lote %s", lotCode),
	})
	if err != nil {
		s.logger.Warn("no se pudo enviar alerta de venta",
			zap.String("lote", lotCode), zap.Error(err))
	}
}

func productName(material string) string {
	if name, ok := productNames[material]; ok {
		return name
	}
	return material
}
