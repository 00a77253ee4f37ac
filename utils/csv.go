package utils

import (
	"bufio"
	"io"
	"strings"
	"time"

	"captiveportal/models"
)

const csvDateLayout = "02/01/2006 15:04"

var contactCSVHeaders = []string{
	"Nome",
	"Cognome",
	"Email",
	"Telefono",
	"Sede",
	"Città",
	"Regione",
	"Consenso Marketing",
	"Dispositivo",
	"Sistema Operativo",
	"Browser",
	"Data Registrazione",
}

// ContactsCSVFilename returns the download name for an export made at now
func ContactsCSVFilename(now time.Time) string {
	return "contatti_" + now.Format("2006-01-02") + ".csv"
}

// WriteContactsCSV writes contacts as a spreadsheet-friendly CSV: UTF-8 BOM,
// semicolon separated, quoted data cells.
func WriteContactsCSV(w io.Writer, contacts []models.Contact) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("\ufeff"); err != nil {
		return err
	}
	if _, err := bw.WriteString(strings.Join(contactCSVHeaders, ";")); err != nil {
		return err
	}

	for _, c := range contacts {
		consent := "No"
		if c.MarketingConsent {
			consent = "Sì"
		}
		row := []string{
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.LocationName,
			c.City,
			c.Region,
			consent,
			c.Device.Type,
			c.Device.OS,
			c.Device.Browser,
			c.CreatedAt.Format(csvDateLayout),
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for i, cell := range row {
			if i > 0 {
				if err := bw.WriteByte(';'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quoteCell(cell)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
