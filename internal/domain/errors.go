package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrForbidden         = errors.New("acceso denegado")
	ErrUnauthorized      = errors.New("credenciales inválidas")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// Errores del motor MRP.
// NoActiveBOM, BOMCycleOrTooDeep e InvalidLotSizingParameters son errores por material:
// el orquestador los registra, omite el material y continúa la corrida.
// MaterialReadFailure y PlannedOrderWriteFailure son de infraestructura y abortan la corrida.
var (
	ErrNoActiveBOM                = errors.New("material sin lista de materiales vigente")
	ErrBOMCycleOrTooDeep          = errors.New("explosión de BOM con ciclo o profundidad excedida")
	ErrInvalidLotSizingParameters = errors.New("parámetros de tamaño de lote inválidos")
	ErrMaterialReadFailure        = errors.New("fallo de lectura de datos de planeación")
	ErrPlannedOrderWriteFailure   = errors.New("fallo de escritura de órdenes planificadas")
)

// IsInfrastructure indica si err corresponde a un fallo de infraestructura (lectura/escritura)
// que invalida la corrida completa.
func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrMaterialReadFailure) || errors.Is(err, ErrPlannedOrderWriteFailure)
}

// SkipReason devuelve el código de motivo para un error por material.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveBOM):
		return "NO_ACTIVE_BOM"
	case errors.Is(err, ErrBOMCycleOrTooDeep):
		return "BOM_CYCLE_OR_TOO_DEEP"
	case errors.Is(err, ErrInvalidLotSizingParameters):
		return "INVALID_LOT_SIZING_PARAMETERS"
	default:
		return "UNKNOWN"
	}
}
