package xlsexport

import (
	"testing"

	applicationapimodels "campus-jobs-backend/models/api/application"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportApplicationList(t *testing.T) {
	list := []applicationapimodels.ApplicationView{
		{CandidateName: "Ann Lee", Email: "ann@example.com", JobTitle: "Backend intern", StatusName: "New", IsFavorite: true},
		{CandidateName: "Bob Ray", Email: "bob@example.com", JobTitle: "Data analyst", StatusName: "Rejected"},
	}
	buf, err := impl{}.ExportApplicationList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	require.Equal(t, "Candidate", header)
	name, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	require.Equal(t, "Bob Ray", name)
	favorite, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	require.Equal(t, "yes", favorite)
}

func TestExportEmptyList(t *testing.T) {
	buf, err := impl{}.ExportApplicationList(nil)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())
}
