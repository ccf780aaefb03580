package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Enseignant", "Date", "Heure"},
		Rows: []map[string]string{
			{"Enseignant": "Amel Benali", "Date": "2025-06-01", "Heure": "09:00"},
			{"Enseignant": "Yacine Cherif", "Date": "2025-06-02"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Enseignant,Date,Heure\nAmel Benali,2025-06-01,09:00\nYacine Cherif,2025-06-02,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Enseignant", "Date"},
		Rows:    []map[string]string{{"Enseignant": "Amel Benali", "Date": "2025-06-01"}},
	}

	out, err := NewPDFExporter().Render(data, "Surveillances")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
