package exports

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"inmobiliaria_backend/internal/leads/domain"
)

const (
	dateLayout     = "02/01/2006"
	fileDateLayout = "2006-01-02"
	missingZone    = "-"
)

var leadHeader = []string{"Nombre", "Email", "WhatsApp", "Tipo", "Score", "Estado", "Zona", "Fecha"}

// WriteLeadsCSV writes the header and one row per lead, in order.
func WriteLeadsCSV(w io.Writer, leads []domain.Lead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(leadHeader); err != nil {
		return err
	}
	for _, lead := range leads {
		if err := writer.Write(leadRow(lead)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func leadRow(lead domain.Lead) []string {
	zone := lead.Zone()
	if zone == "" {
		zone = missingZone
	}
	return []string{
		lead.Nombre,
		lead.Email,
		lead.Whatsapp,
		string(lead.Tipo),
		strconv.Itoa(lead.Score),
		string(lead.Estado),
		zone,
		lead.CreatedAt.Format(dateLayout),
	}
}

// FileName is the attachment name for an export made at now.
func FileName(now time.Time) string {
	return "leads-" + now.Format(fileDateLayout) + ".csv"
}
