package applicationhandler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	applicationstore "campus-jobs-backend/lib/application/store"
	companystore "campus-jobs-backend/lib/company/store"
	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	eventstore "campus-jobs-backend/lib/event/store"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	usersstore "campus-jobs-backend/lib/users/store"
	"campus-jobs-backend/models"
	applicationapimodels "campus-jobs-backend/models/api/application"
	dictapimodels "campus-jobs-backend/models/api/dict"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAppStore struct {
	applicationstore.Provider
	apps    map[string]*dbmodels.JobApplication
	history map[string][]dbmodels.ApplicationStageHistory
}

func (f *fakeAppStore) Create(rec dbmodels.JobApplication, history *dbmodels.ApplicationStageHistory) (string, error) {
	for _, app := range f.apps {
		if app.JobID == rec.JobID && app.UserID == rec.UserID {
			return "", models.NewPolicyError("you have already applied to this job")
		}
	}
	rec.ID = fmt.Sprintf("app%d", len(f.apps)+1)
	f.apps[rec.ID] = &rec
	if history != nil {
		history.ApplicationID = rec.ID
		f.history[rec.ID] = append(f.history[rec.ID], *history)
	}
	return rec.ID, nil
}

func (f *fakeAppStore) GetByID(id string) (*dbmodels.JobApplication, error) {
	rec, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	result.History = f.history[id]
	return &result, nil
}

func (f *fakeAppStore) Update(id string, updMap map[string]interface{}) error {
	rec := f.apps[id]
	if value, ok := updMap["is_favorite"]; ok {
		rec.IsFavorite = value.(bool)
	}
	if value, ok := updMap["notes"]; ok {
		rec.Notes = value.(string)
	}
	return nil
}

func (f *fakeAppStore) ChangeStage(id string, history dbmodels.ApplicationStageHistory) error {
	stageID := history.StageID
	f.apps[id].StageID = &stageID
	history.ApplicationID = id
	f.history[id] = append(f.history[id], history)
	return nil
}

func (f *fakeAppStore) ChangeStatus(id, statusID string, history *dbmodels.ApplicationStageHistory) error {
	f.apps[id].StatusID = statusID
	if history != nil {
		history.ApplicationID = id
		f.history[id] = append(f.history[id], *history)
	}
	return nil
}

type fakeJobStore struct {
	jobstore.Provider
	jobs map[string]*dbmodels.Job
}

func (f *fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeJobStore) StageList(jobID string) ([]dbmodels.JobHiringStage, error) {
	return f.jobs[jobID].Stages, nil
}

type fakeStatusStore struct {
	applicationstatusstore.Provider
	statuses []dbmodels.ApplicationStatus
}

func (f fakeStatusStore) GetByID(id string) (*dbmodels.ApplicationStatus, error) {
	for _, rec := range f.statuses {
		if rec.ID == id {
			result := rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f fakeStatusStore) First() (*dbmodels.ApplicationStatus, error) {
	result := f.statuses[0]
	return &result, nil
}

type statusResolver struct {
	byKind map[models.StatusKind]dbmodels.ApplicationStatus
}

func (r statusResolver) List() ([]dictapimodels.ApplicationStatusView, error) { return nil, nil }

func (r statusResolver) Resolve(ctx context.Context, kind models.StatusKind) (*dbmodels.ApplicationStatus, error) {
	rec := r.byKind[kind]
	return &rec, nil
}

type fakeCompanyStore struct {
	companystore.Provider
	managed  map[string][]string
	managers map[string][]string
}

func (f fakeCompanyStore) ManagedCompanyIDs(managerID string) ([]string, error) {
	return f.managed[managerID], nil
}

func (f fakeCompanyStore) ManagerIDs(companyID string) ([]string, error) {
	return f.managers[companyID], nil
}

type fakeEventStore struct {
	eventstore.Provider
}

func (f fakeEventStore) ListByApplication(applicationID string) ([]dbmodels.Event, error) {
	return []dbmodels.Event{}, nil
}

type fakeUsersStore struct {
	usersstore.Provider
}

func (f fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{Name: "Candidate " + id}
	rec.ID = id
	return &rec, nil
}

type sent struct {
	userID string
	data   models.NotificationData
}

type fakeSink struct {
	sent    []sent
	failing bool
}

func (f *fakeSink) Send(userID string, data models.NotificationData) error {
	if f.failing {
		return errors.New("mail server is down")
	}
	f.sent = append(f.sent, sent{userID: userID, data: data})
	return nil
}

func status(id, name string, order int) dbmodels.ApplicationStatus {
	rec := dbmodels.ApplicationStatus{Name: name, Slug: strings.ToLower(name), Order: order}
	rec.ID = id
	return rec
}

func pipelineStage(jobID, stageID, name string, order int) dbmodels.JobHiringStage {
	rec := dbmodels.JobHiringStage{
		JobID:         jobID,
		HiringStageID: stageID,
		HiringStage:   &dbmodels.HiringStage{Name: name},
		OrderIndex:    order,
	}
	rec.HiringStage.ID = stageID
	return rec
}

type fixture struct {
	handler impl
	apps    *fakeAppStore
	jobs    *fakeJobStore
	sink    *fakeSink
}

func newFixture() fixture {
	statuses := fakeStatusStore{statuses: []dbmodels.ApplicationStatus{
		status("s-new", "New", 1),
		status("s-short", "Shortlisted", 3),
	}}
	job := &dbmodels.Job{CompanyID: "c1", Title: "Backend intern", Status: models.JobStatusActive}
	job.ID = "job1"
	job.Stages = []dbmodels.JobHiringStage{
		pipelineStage("job1", "st-applied", "Applied", 1),
		pipelineStage("job1", "st-interview", "Interview", 2),
	}
	jobs := &fakeJobStore{jobs: map[string]*dbmodels.Job{"job1": job}}
	apps := &fakeAppStore{
		apps:    map[string]*dbmodels.JobApplication{},
		history: map[string][]dbmodels.ApplicationStageHistory{},
	}
	companies := fakeCompanyStore{
		managed:  map[string][]string{"m1": {"c1"}, "m2": {"c2"}},
		managers: map[string][]string{"c1": {"m1", "m3"}},
	}
	sink := &fakeSink{}
	return fixture{
		handler: impl{
			store:        apps,
			jobStore:     jobs,
			statusStore:  statuses,
			companyStore: companies,
			eventStore:   fakeEventStore{},
			usersStore:   fakeUsersStore{},
			statuses: statusResolver{byKind: map[models.StatusKind]dbmodels.ApplicationStatus{
				models.StatusKindAccepted: status("s-acc", "Accepted", 6),
				models.StatusKindRejected: status("s-rej", "Rejected", 7),
			}},
			guard:         guard.NewInstance(companies),
			notifications: sink,
			now: func() time.Time {
				return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
			},
		},
		apps: apps,
		jobs: jobs,
		sink: sink,
	}
}

// addApplication stores an application of candidate u1 to job1 with status New
func (f fixture) addApplication(stageID *string) string {
	rec := dbmodels.JobApplication{JobID: "job1", UserID: "u1", StatusID: "s-new", StageID: stageID}
	rec.Status = &dbmodels.ApplicationStatus{Name: "New"}
	rec.Job = f.jobs.jobs["job1"]
	id, _ := f.apps.Create(rec, nil)
	return id
}

func TestSubmit(t *testing.T) {
	t.Run("first status, first stage and history", func(t *testing.T) {
		f := newFixture()
		id, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{CoverLetter: " Hello "}, nil)
		require.NoError(t, err)
		rec := f.apps.apps[id]
		require.Equal(t, "s-new", rec.StatusID)
		require.Equal(t, "st-applied", *rec.StageID)
		require.Equal(t, "Hello", rec.CoverLetter)
		require.Len(t, f.apps.history[id], 1)
		require.Equal(t, models.HistoryNoteSubmitted, f.apps.history[id][0].Notes)
		require.Len(t, f.sink.sent, 2)
		require.Equal(t, models.NewApplication, f.sink.sent[0].data.Code)
		require.Contains(t, f.sink.sent[0].data.Msg, "Candidate u1")
	})
	t.Run("duplicate", func(t *testing.T) {
		f := newFixture()
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		require.NoError(t, err)
		_, err = f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		var pErr models.PolicyError
		require.ErrorAs(t, err, &pErr)
	})
	t.Run("inactive job", func(t *testing.T) {
		f := newFixture()
		f.jobs.jobs["job1"].Status = models.JobStatusClosed
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		require.ErrorIs(t, err, models.ErrNotFound)
	})
	t.Run("deadline passed", func(t *testing.T) {
		f := newFixture()
		deadline := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		f.jobs.jobs["job1"].SubmissionDeadline = &deadline
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		var pErr models.PolicyError
		require.ErrorAs(t, err, &pErr)
	})
	t.Run("deadline day is still open", func(t *testing.T) {
		f := newFixture()
		deadline := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		f.jobs.jobs["job1"].SubmissionDeadline = &deadline
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		require.NoError(t, err)
	})
	t.Run("deadline day is open in any server zone", func(t *testing.T) {
		f := newFixture()
		tokyo := time.FixedZone("JST", 9*60*60)
		f.handler.now = func() time.Time {
			return time.Date(2026, 3, 10, 12, 0, 0, 0, tokyo)
		}
		deadline := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).In(time.FixedZone("EST", -5*60*60))
		f.jobs.jobs["job1"].SubmissionDeadline = &deadline
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, nil)
		require.NoError(t, err)
	})
	t.Run("resume type is checked", func(t *testing.T) {
		f := newFixture()
		resume := &ResumeFile{Name: "cv.exe", Reader: strings.NewReader("x"), Size: 1}
		_, err := f.handler.Submit(context.Background(), "u1", "job1", applicationapimodels.SubmitRequest{}, resume)
		var vErr models.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Empty(t, f.apps.apps)
	})
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	id := f.addApplication(nil)

	require.NoError(t, f.handler.UpdateStatus("m1", id, "s-short"))
	require.Equal(t, "s-short", f.apps.apps[id].StatusID)
	require.Len(t, f.sink.sent, 1)
	require.Equal(t, "u1", f.sink.sent[0].userID)
	require.Equal(t, models.ApplicationStatusChanged, f.sink.sent[0].data.Code)
	require.Contains(t, f.sink.sent[0].data.Msg, "from New to Shortlisted")

	var vErr models.ValidationError
	require.ErrorAs(t, f.handler.UpdateStatus("m1", id, "s-missing"), &vErr)
	require.ErrorIs(t, f.handler.UpdateStatus("m2", id, "s-new"), models.ErrAccessDenied)
	require.Equal(t, "s-short", f.apps.apps[id].StatusID)
}

func TestUpdateStatusNotificationFailure(t *testing.T) {
	f := newFixture()
	id := f.addApplication(nil)
	f.sink.failing = true
	require.NoError(t, f.handler.UpdateStatus("m1", id, "s-short"))
	require.Equal(t, "s-short", f.apps.apps[id].StatusID)
}

func TestUpdateStage(t *testing.T) {
	f := newFixture()
	stageID := "st-applied"
	id := f.addApplication(&stageID)

	notified, err := f.handler.UpdateStage("m1", id, "st-interview", " went well ")
	require.NoError(t, err)
	require.True(t, notified)
	history := f.apps.history[id]
	require.Len(t, history, 1)
	require.Equal(t, *f.apps.apps[id].StageID, history[0].StageID)
	require.Equal(t, "went well", history[0].Notes)
	require.Equal(t, "m1", *history[0].ChangedByID)
	require.Contains(t, f.sink.sent[0].data.Msg, "Interview")

	f.sink.failing = true
	notified, err = f.handler.UpdateStage("m1", id, "st-applied", "")
	require.NoError(t, err)
	require.False(t, notified)
	require.Len(t, f.apps.history[id], 2)
	require.Equal(t, "st-applied", *f.apps.apps[id].StageID)

	_, err = f.handler.UpdateStage("m1", id, "st-foreign", "")
	var vErr models.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, f.apps.history[id], 2)

	_, err = f.handler.UpdateStage("m2", id, "st-interview", "")
	require.ErrorIs(t, err, models.ErrAccessDenied)
}

func TestAcceptReject(t *testing.T) {
	t.Run("accept appends history with the current stage", func(t *testing.T) {
		f := newFixture()
		stageID := "st-interview"
		id := f.addApplication(&stageID)
		require.NoError(t, f.handler.Accept(context.Background(), "m1", id))
		require.Equal(t, "s-acc", f.apps.apps[id].StatusID)
		history := f.apps.history[id]
		require.Len(t, history, 1)
		require.Equal(t, "st-interview", history[0].StageID)
		require.Equal(t, models.HistoryNoteAccepted, history[0].Notes)
		require.Equal(t, models.ApplicationAccepted, f.sink.sent[0].data.Code)
	})
	t.Run("reject without stage skips history", func(t *testing.T) {
		f := newFixture()
		id := f.addApplication(nil)
		require.NoError(t, f.handler.Reject(context.Background(), "m1", id))
		require.Equal(t, "s-rej", f.apps.apps[id].StatusID)
		require.Empty(t, f.apps.history[id])
		require.Equal(t, models.ApplicationRejected, f.sink.sent[0].data.Code)
	})
	t.Run("foreign manager", func(t *testing.T) {
		f := newFixture()
		id := f.addApplication(nil)
		require.ErrorIs(t, f.handler.Accept(context.Background(), "m2", id), models.ErrAccessDenied)
		require.Equal(t, "s-new", f.apps.apps[id].StatusID)
	})
}

func TestFavoriteAndNotes(t *testing.T) {
	f := newFixture()
	id := f.addApplication(nil)

	isFavorite, err := f.handler.ToggleFavorite("m1", id)
	require.NoError(t, err)
	require.True(t, isFavorite)
	isFavorite, err = f.handler.ToggleFavorite("m1", id)
	require.NoError(t, err)
	require.False(t, isFavorite)

	f.sink.failing = true
	require.NoError(t, f.handler.UpdateNotes("m1", id, "call back on Monday"))
	require.Equal(t, "call back on Monday", f.apps.apps[id].Notes)
}

func TestGet(t *testing.T) {
	f := newFixture()
	id := f.addApplication(nil)
	item, err := f.handler.Get("m1", id)
	require.NoError(t, err)
	require.Equal(t, "Backend intern", item.JobTitle)
	require.NotNil(t, item.Events)

	_, err = f.handler.Get("m1", "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}
