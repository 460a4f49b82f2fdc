package pdfexport

import (
	"bytes"
	"testing"
	"time"

	applicationapimodels "campus-jobs-backend/models/api/application"
	eventapimodels "campus-jobs-backend/models/api/event"
	"github.com/stretchr/testify/require"
)

func TestApplicationSummary(t *testing.T) {
	data := SummaryData{
		Application: applicationapimodels.ApplicationViewExt{
			ApplicationView: applicationapimodels.ApplicationView{
				CandidateName: "Zoë Martín",
				JobTitle:      "Backend intern",
				CompanyName:   "Acme",
				StatusName:    "Shortlisted",
				StageName:     "Interview",
				Notes:         "Strong Go background",
			},
			History: []applicationapimodels.HistoryView{
				{StageName: "Applied", ChangedByName: "System", Notes: "Application submitted", CreatedAt: "2026-03-01T10:00:00Z"},
				{StageName: "Interview", ChangedByName: "Kim", CreatedAt: "2026-03-04T10:00:00Z"},
			},
		},
		Events: []eventapimodels.EventView{
			{Title: "Technical interview", StartTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), Type: "interview", Status: "scheduled"},
		},
	}
	body, err := impl{}.ApplicationSummary(data)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestGetImgType(t *testing.T) {
	imgType, err := GetImgType("logo.PNG")
	require.NoError(t, err)
	require.Equal(t, "png", imgType)

	_, err = GetImgType("logo")
	require.Error(t, err)
	_, err = GetImgType("logo.")
	require.Error(t, err)
}
