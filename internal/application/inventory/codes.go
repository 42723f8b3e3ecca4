package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de los códigos de documento.
const (
	PrefixProcurementOrder = "PO"
	PrefixCrn              = "CRN"
	PrefixSalesOrder       = "SO"
)

// DocumentCode genera un código legible del tipo PO-20260115-7F3A9C.
// El sufijo sale de un UUID; la unicidad final la garantiza el índice único de la tabla.
func DocumentCode(prefix string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return prefix + "-" + at.Format("20060102") + "-" + suffix
}
