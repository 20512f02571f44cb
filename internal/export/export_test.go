package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjcarter/shortlist/internal/model"
)

func record(id int64, company, title string, rating int, statuses ...model.HistoryEntry) *model.ApplicationRecord {
	return &model.ApplicationRecord{
		ID: id, CompanyName: company, JobTitle: title, Rating: rating,
		StatusHistory: statuses,
	}
}

func entry(s model.Status, day int) model.HistoryEntry {
	return model.HistoryEntry{Status: s, Timestamp: time.Date(2025, time.May, day, 10, 0, 0, 0, time.UTC)}
}

func TestExportGolden(t *testing.T) {
	records := []*model.ApplicationRecord{
		record(1, "Acme", "Engineer", 0, entry(model.StatusApplied, 1)),
		record(2, "Globex", "Analyst", 3, entry(model.StatusApplied, 3), entry(model.StatusNoResponse, 10)),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, records))

	g := goldie.New(t)
	g.Assert(t, "export_two_records", buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	dt := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)
	interview := record(3, "Initech", "SRE", 5,
		entry(model.StatusApplied, 2), entry(model.StatusInterviewScheduled, 12))
	interview.StatusHistory[1].InterviewDateTime = &dt
	interview.StatusHistory[1].InterviewLocation = "HQ"
	interview.StatusHistory[1].InterviewType = model.InterviewOnsite
	interview.InterviewDateTime = &dt
	interview.InterviewLocation = "HQ"
	archived := record(4, "Globex", "Analyst", 2, entry(model.StatusApplied, 5))
	archived.Archived = true

	in := []*model.ApplicationRecord{interview, archived}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, in))

	res, err := Import(&buf)
	require.NoError(t, err)
	require.Empty(t, res.Dropped)
	require.Len(t, res.Records, 2)

	byID := map[int64]*model.ApplicationRecord{}
	for _, r := range res.Records {
		byID[r.ID] = r
	}
	assert.Equal(t, interview, byID[3])
	assert.Equal(t, archived, byID[4])
}

func TestImport_DropsInvalidRecordsOnly(t *testing.T) {
	input := `[
		{"id": 1, "companyName": "Acme", "jobTitle": "Dev",
		 "statusHistory": [{"status": "Applied", "timestamp": "2025-05-01T10:00:00Z"}]},
		{"id": "two", "companyName": "BadID", "jobTitle": "Dev",
		 "statusHistory": [{"status": "Applied", "timestamp": "2025-05-01T10:00:00Z"}]},
		{"id": 3, "companyName": 42, "jobTitle": "Dev",
		 "statusHistory": [{"status": "Applied", "timestamp": "2025-05-01T10:00:00Z"}]},
		{"id": 4, "companyName": "NoHistory", "jobTitle": "Dev", "statusHistory": []},
		{"id": 5, "companyName": "BadStatus", "jobTitle": "Dev",
		 "statusHistory": [{"status": "Ghosted", "timestamp": "2025-05-01T10:00:00Z"}]},
		{"id": 6, "companyName": "BadTime", "jobTitle": "Dev",
		 "statusHistory": [{"status": "Applied", "timestamp": "yesterday"}]},
		{"id": 7, "companyName": "Valid", "jobTitle": "Dev",
		 "statusHistory": [{"status": "Bookmarked", "timestamp": "2025-05-02T10:00:00Z"}]}
	]`

	res, err := Import(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, int64(1), res.Records[0].ID)
	assert.Equal(t, int64(7), res.Records[1].ID)

	require.Len(t, res.Dropped, 5)
	dropped := map[int]bool{}
	for _, d := range res.Dropped {
		dropped[d.Index] = true
		assert.NotEmpty(t, d.Reason)
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}, dropped)
}

func TestImport_NotAnArrayIsFatal(t *testing.T) {
	_, err := Import(strings.NewReader(`{"id": 1}`))
	require.Error(t, err)
}

func TestExport_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
