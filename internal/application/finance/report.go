package finance

import (
	"context"
	"fmt"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
)

// ReportPDFGenerator genera el PDF del reporte financiero mensual.
type ReportPDFGenerator interface {
	GenerateMonthlyReportPDF(ctx context.Context, org *entity.Organization, snapshot *dto.BalanceSnapshotDTO) ([]byte, error)
}

// OrganizationReader lectura de los datos de cabecera de una organización.
type OrganizationReader interface {
	GetByID(ctx context.Context, orgID string) (*entity.Organization, error)
}

// ReportUseCase arma el reporte mensual a partir del balance (que incluye el resumen del mes).
type ReportUseCase struct {
	service   *Service
	orgs      OrganizationReader
	generator ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(service *Service, orgs OrganizationReader, generator ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{service: service, orgs: orgs, generator: generator}
}

// MonthlyReportPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna los mismos errores que BalanceSnapshot; un fallo del generador se envuelve.
func (uc *ReportUseCase) MonthlyReportPDF(ctx context.Context, orgID, month string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Balance del mes (valida mes y organización) ────────────────────────
	snapshot, err := uc.service.BalanceSnapshot(ctx, SummaryRequest{OrganizationID: orgID, Month: month})
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cabecera ───────────────────────────────────────────────────────────
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, "", readErr("organización", err)
	}
	if org == nil {
		org = &entity.Organization{ID: orgID}
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateMonthlyReportPDF(ctx, org, snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("finanzas_%s.pdf", snapshot.Month), nil
}
