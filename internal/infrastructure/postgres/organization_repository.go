package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// Asegura que OrganizationRepo implementa repository.OrganizationRepository.
var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo consultas sobre organizaciones (tenants) en PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Exists informa si la organización existe y no está inactiva.
func (r *OrganizationRepo) Exists(ctx context.Context, orgID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM organizations
			 WHERE id = $1
			   AND status <> 'inactive'
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, orgID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check organization: %w", err)
	}
	return ok, nil
}

// GetByID obtiene una organización por ID. Devuelve nil, nil si no existe.
func (r *OrganizationRepo) GetByID(ctx context.Context, orgID string) (*entity.Organization, error) {
	const query = `
		SELECT id, name, tax_id, status, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	err := r.q.QueryRow(ctx, query, orgID).Scan(
		&o.ID, &o.Name, &o.TaxID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// HasActiveModule informa si la organización tiene el módulo activo y sin vencer.
// Consulta directamente organization_modules para una respuesta O(1) vía índice.
func (r *OrganizationRepo) HasActiveModule(ctx context.Context, orgID, moduleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM organization_modules
			 WHERE organization_id = $1
			   AND module_name     = $2
			   AND is_active       = true
			   AND (expires_at IS NULL OR expires_at > now())
		)`
	var active bool
	if err := r.q.QueryRow(ctx, query, orgID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return active, nil
}
