package jobhandler

import (
	"fmt"
	"testing"
	"time"

	"campus-jobs-backend/lib/guard"
	"campus-jobs-backend/models"
	jobapimodels "campus-jobs-backend/models/api/job"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeJobStore struct {
	jobs         map[string]*dbmodels.Job
	stages       map[string][]dbmodels.JobHiringStage
	applications map[string]int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		jobs:         map[string]*dbmodels.Job{},
		stages:       map[string][]dbmodels.JobHiringStage{},
		applications: map[string]int64{},
	}
}

func (f *fakeJobStore) setStages(jobID string, stageIDs []string) {
	list := make([]dbmodels.JobHiringStage, 0, len(stageIDs))
	for k, id := range stageIDs {
		list = append(list, dbmodels.JobHiringStage{JobID: jobID, HiringStageID: id, OrderIndex: k + 1})
	}
	f.stages[jobID] = list
}

func (f *fakeJobStore) CreateWithStages(rec dbmodels.Job, stageIDs []string) (string, error) {
	rec.ID = fmt.Sprintf("job%d", len(f.jobs)+1)
	f.jobs[rec.ID] = &rec
	f.setStages(rec.ID, stageIDs)
	return rec.ID, nil
}

func (f *fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	rec, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *fakeJobStore) Update(id string, updMap map[string]interface{}, stageIDs []string) error {
	rec := f.jobs[id]
	if value, ok := updMap["status"]; ok {
		rec.Status = value.(models.JobStatus)
	}
	if value, ok := updMap["title"]; ok {
		rec.Title = value.(string)
	}
	if stageIDs != nil {
		f.setStages(id, stageIDs)
	}
	return nil
}

func (f *fakeJobStore) List(companyIDs []string, filter jobapimodels.JobFilter) ([]dbmodels.Job, error) {
	result := []dbmodels.Job{}
	for _, rec := range f.jobs {
		if companyIDs != nil && !guard.Contains(companyIDs, rec.CompanyID) {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		result = append(result, *rec)
	}
	return result, nil
}

func (f *fakeJobStore) ListCount(companyIDs []string, filter jobapimodels.JobFilter) (int64, error) {
	list, _ := f.List(companyIDs, filter)
	return int64(len(list)), nil
}

func (f *fakeJobStore) ApplicationCounts(jobIDs []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, id := range jobIDs {
		result[id] = f.applications[id]
	}
	return result, nil
}

func (f *fakeJobStore) Delete(id string) error {
	if f.applications[id] > 0 {
		return models.NewPolicyError("the job cannot be deleted because it has applications")
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) StageList(jobID string) ([]dbmodels.JobHiringStage, error) {
	return f.stages[jobID], nil
}

func (f *fakeJobStore) StageSetOrder(jobID string, list []dbmodels.JobHiringStage) error {
	f.stages[jobID] = list
	return nil
}

type fakeCompanyStore struct {
	managed  map[string][]string
	managers map[string][]string
}

func (f *fakeCompanyStore) GetByID(id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{Name: "Acme"}
	rec.ID = id
	return &rec, nil
}

func (f *fakeCompanyStore) List(ids []string) ([]dbmodels.Company, error) { return nil, nil }

func (f *fakeCompanyStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (f *fakeCompanyStore) ManagedCompanyIDs(managerID string) ([]string, error) {
	return f.managed[managerID], nil
}

func (f *fakeCompanyStore) ManagerIDs(companyID string) ([]string, error) {
	return f.managers[companyID], nil
}

func (f *fakeCompanyStore) GetLink(companyID, userID string) (*dbmodels.CompanyManager, error) {
	return nil, nil
}

func (f *fakeCompanyStore) AddManager(companyID, userID string, isPrimary bool) error { return nil }

func (f *fakeCompanyStore) RemoveManager(companyID, userID string) error { return nil }

func (f *fakeCompanyStore) SetPrimary(companyID, userID string) error { return nil }

type fakeCategoryStore struct{}

func (f fakeCategoryStore) Create(rec dbmodels.Category) (string, error) { return "", nil }

func (f fakeCategoryStore) GetByID(id string) (*dbmodels.Category, error) {
	if id != "cat1" {
		return nil, nil
	}
	rec := dbmodels.Category{Name: "Engineering"}
	rec.ID = id
	return &rec, nil
}

func (f fakeCategoryStore) List() ([]dbmodels.Category, error) { return nil, nil }

type fakeStageStore struct {
	stages []dbmodels.HiringStage
}

func newFakeStageStore() *fakeStageStore {
	f := &fakeStageStore{}
	for k, name := range []string{"Applied", "Screening", "Interview"} {
		rec := dbmodels.HiringStage{Name: name, OrderIndex: k + 1, IsDefault: true}
		rec.ID = fmt.Sprintf("st%d", k+1)
		f.stages = append(f.stages, rec)
	}
	custom := dbmodels.HiringStage{Name: "Assessment", OrderIndex: 4}
	custom.ID = "st4"
	f.stages = append(f.stages, custom)
	return f
}

func (f *fakeStageStore) Create(rec dbmodels.HiringStage) (string, error) { return "", nil }

func (f *fakeStageStore) GetByID(id string) (*dbmodels.HiringStage, error) { return nil, nil }

func (f *fakeStageStore) List() ([]dbmodels.HiringStage, error) { return f.stages, nil }

func (f *fakeStageStore) DefaultList() ([]dbmodels.HiringStage, error) {
	result := []dbmodels.HiringStage{}
	for _, rec := range f.stages {
		if rec.IsDefault {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeStageStore) ListByIDs(ids []string) ([]dbmodels.HiringStage, error) {
	result := []dbmodels.HiringStage{}
	for _, rec := range f.stages {
		if guard.Contains(ids, rec.ID) {
			result = append(result, rec)
		}
	}
	return result, nil
}

type fakeUsersStore struct{}

func (f fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{Name: "Manager " + id}
	rec.ID = id
	return &rec, nil
}

func (f fakeUsersStore) GetByIDs(ids []string) ([]dbmodels.User, error) { return nil, nil }

func (f fakeUsersStore) ActiveCandidateIDs(afterID string, limit int) ([]string, error) {
	return nil, nil
}

func (f fakeUsersStore) HasRole(id string, roles ...models.UserRole) (bool, error) {
	return true, nil
}

type enqueued struct {
	userIDs []string
	data    models.NotificationData
}

type fakeQueue struct {
	direct    []enqueued
	broadcast []models.NotificationData
	failing   bool
}

func (f *fakeQueue) Enqueue(userIDs []string, data models.NotificationData) error {
	f.direct = append(f.direct, enqueued{userIDs: userIDs, data: data})
	return nil
}

func (f *fakeQueue) EnqueueActiveCandidates(data models.NotificationData) (int, error) {
	if f.failing {
		return 0, errors.New("queue is down")
	}
	f.broadcast = append(f.broadcast, data)
	return 42, nil
}

type fixture struct {
	handler impl
	jobs    *fakeJobStore
	queue   *fakeQueue
}

func newFixture() fixture {
	companies := &fakeCompanyStore{
		managed:  map[string][]string{"m1": {"c1"}, "m2": {"c1"}, "m3": {"c2"}},
		managers: map[string][]string{"c1": {"m1", "m2"}, "c2": {"m3"}},
	}
	jobs := newFakeJobStore()
	queue := &fakeQueue{}
	return fixture{
		handler: impl{
			store:         jobs,
			companyStore:  companies,
			categoryStore: fakeCategoryStore{},
			stageStore:    newFakeStageStore(),
			usersStore:    fakeUsersStore{},
			guard:         guard.NewInstance(companies),
			notifications: queue,
			now: func() time.Time {
				return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
			},
		},
		jobs:  jobs,
		queue: queue,
	}
}

func jobData(status models.JobStatus) jobapimodels.JobData {
	return jobapimodels.JobData{
		CompanyID:       "c1",
		Title:           "Backend intern",
		Description:     "Go services",
		JobType:         models.JobTypeInternship,
		ExperienceLevel: models.ExperienceEntry,
		Vacancies:       1,
		Status:          status,
	}
}

func TestCreate(t *testing.T) {
	t.Run("draft gets default stages and no fan-out", func(t *testing.T) {
		f := newFixture()
		id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
		require.NoError(t, err)
		require.Equal(t, models.JobStatusDraft, f.jobs.jobs[id].Status)
		stages := f.jobs.stages[id]
		require.Len(t, stages, 3)
		require.Equal(t, "st1", stages[0].HiringStageID)
		require.Equal(t, 3, stages[2].OrderIndex)
		require.Empty(t, f.queue.broadcast)
		require.Empty(t, f.queue.direct)
	})
	t.Run("active job notifies candidates and other managers", func(t *testing.T) {
		f := newFixture()
		id, err := f.handler.Create("m1", jobData(models.JobStatusActive))
		require.NoError(t, err)
		require.Len(t, f.queue.broadcast, 1)
		require.Equal(t, models.JobCreated, f.queue.broadcast[0].Code)
		require.Equal(t, id, f.queue.broadcast[0].EntityID)
		require.Len(t, f.queue.direct, 1)
		require.Equal(t, []string{"m2"}, f.queue.direct[0].userIDs)
		require.Equal(t, models.JobActivated, f.queue.direct[0].data.Code)
	})
	t.Run("is_active true without status activates", func(t *testing.T) {
		f := newFixture()
		data := jobData("")
		active := true
		data.IsActive = &active
		id, err := f.handler.Create("m1", data)
		require.NoError(t, err)
		require.Equal(t, models.JobStatusActive, f.jobs.jobs[id].Status)
	})
	t.Run("fan-out failure keeps the job", func(t *testing.T) {
		f := newFixture()
		f.queue.failing = true
		id, err := f.handler.Create("m1", jobData(models.JobStatusActive))
		require.NoError(t, err)
		require.NotNil(t, f.jobs.jobs[id])
	})
	t.Run("custom pipeline", func(t *testing.T) {
		f := newFixture()
		data := jobData(models.JobStatusDraft)
		data.HiringStages = []string{"st4", "st1"}
		id, err := f.handler.Create("m1", data)
		require.NoError(t, err)
		require.Equal(t, "st4", f.jobs.stages[id][0].HiringStageID)
		require.Equal(t, "st1", f.jobs.stages[id][1].HiringStageID)
	})
	t.Run("unknown stage", func(t *testing.T) {
		f := newFixture()
		data := jobData(models.JobStatusDraft)
		data.HiringStages = []string{"st9"}
		_, err := f.handler.Create("m1", data)
		var vErr models.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "hiring_stages", vErr.Field)
	})
	t.Run("unknown category", func(t *testing.T) {
		f := newFixture()
		data := jobData(models.JobStatusDraft)
		category := "cat9"
		data.CategoryID = &category
		_, err := f.handler.Create("m1", data)
		var vErr models.ValidationError
		require.ErrorAs(t, err, &vErr)
	})
	t.Run("foreign company", func(t *testing.T) {
		f := newFixture()
		_, err := f.handler.Create("m3", jobData(models.JobStatusDraft))
		require.ErrorIs(t, err, models.ErrAccessDenied)
		require.Empty(t, f.jobs.jobs)
	})
	t.Run("past deadline", func(t *testing.T) {
		f := newFixture()
		data := jobData(models.JobStatusDraft)
		data.SubmissionDeadline = "2026-03-01"
		_, err := f.handler.Create("m1", data)
		require.Error(t, err)
	})
}

func TestUpdate(t *testing.T) {
	f := newFixture()
	id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)

	data := jobData(models.JobStatusDraft)
	data.Title = "Backend intern (Go)"
	require.NoError(t, f.handler.Update("m1", id, data))
	require.Equal(t, "Backend intern (Go)", f.jobs.jobs[id].Title)
	require.Empty(t, f.queue.broadcast)

	require.NoError(t, f.handler.Update("m2", id, jobData(models.JobStatusActive)))
	require.Equal(t, models.JobStatusActive, f.jobs.jobs[id].Status)
	require.Len(t, f.queue.broadcast, 1)
	require.Equal(t, []string{"m1"}, f.queue.direct[0].userIDs)

	// already active, no second fan-out
	require.NoError(t, f.handler.Update("m1", id, jobData(models.JobStatusActive)))
	require.Len(t, f.queue.broadcast, 1)

	inactive := false
	data = jobData("")
	data.IsActive = &inactive
	require.NoError(t, f.handler.Update("m1", id, data))
	require.Equal(t, models.JobStatusClosed, f.jobs.jobs[id].Status)

	err = f.handler.Update("m3", id, jobData(models.JobStatusDraft))
	require.ErrorIs(t, err, models.ErrAccessDenied)

	err = f.handler.Update("m1", "missing", jobData(models.JobStatusDraft))
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateKeepsPastDeadline(t *testing.T) {
	f := newFixture()
	id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)
	past := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.jobs.jobs[id].SubmissionDeadline = &past

	data := jobData(models.JobStatusDraft)
	data.SubmissionDeadline = "2026-02-01"
	require.NoError(t, f.handler.Update("m1", id, data))

	data.SubmissionDeadline = "2026-02-02"
	require.Error(t, f.handler.Update("m1", id, data))
}

func TestToggleActive(t *testing.T) {
	f := newFixture()
	id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)

	status, err := f.handler.ToggleActive("m1", id)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusActive, status)
	require.Len(t, f.queue.broadcast, 1)

	view, err := f.handler.Get("m1", id)
	require.NoError(t, err)
	require.True(t, view.IsActive)
	require.Equal(t, models.JobStatusActive, view.Status)

	status, err = f.handler.ToggleActive("m1", id)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusClosed, status)

	view, err = f.handler.Get("m1", id)
	require.NoError(t, err)
	require.False(t, view.IsActive)

	status, err = f.handler.ToggleActive("m1", id)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusActive, status)
	require.Len(t, f.queue.broadcast, 2)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)

	f.jobs.applications[id] = 2
	err = f.handler.Delete("m1", id)
	var pErr models.PolicyError
	require.ErrorAs(t, err, &pErr)
	require.NotNil(t, f.jobs.jobs[id])

	require.ErrorIs(t, f.handler.Delete("m3", id), models.ErrAccessDenied)

	f.jobs.applications[id] = 0
	require.NoError(t, f.handler.Delete("m1", id))
	require.Nil(t, f.jobs.jobs[id])
}

func TestList(t *testing.T) {
	f := newFixture()
	_, err := f.handler.Create("m1", jobData(models.JobStatusActive))
	require.NoError(t, err)
	_, err = f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)
	other := jobData(models.JobStatusActive)
	other.CompanyID = "c2"
	_, err = f.handler.Create("m3", other)
	require.NoError(t, err)

	list, count, err := f.handler.List("m1", jobapimodels.JobFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	require.Len(t, list, 2)

	list, count, err = f.handler.List("nobody", jobapimodels.JobFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
	require.Empty(t, list)

	list, count, err = f.handler.PublicList(jobapimodels.JobFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
	for _, item := range list {
		require.True(t, item.IsActive)
	}
}

func TestPublicGet(t *testing.T) {
	f := newFixture()
	draftID, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)
	_, err = f.handler.PublicGet(draftID)
	require.ErrorIs(t, err, models.ErrNotFound)

	data := jobData(models.JobStatusActive)
	salary := 1000
	data.SalaryMin = &salary
	activeID, err := f.handler.Create("m1", data)
	require.NoError(t, err)
	view, err := f.handler.PublicGet(activeID)
	require.NoError(t, err)
	require.Nil(t, view.SalaryMin)
}

func TestStages(t *testing.T) {
	f := newFixture()
	id, err := f.handler.Create("m1", jobData(models.JobStatusDraft))
	require.NoError(t, err)

	require.NoError(t, f.handler.StageChangeOrder("m1", id, "st3", 1))
	order := []string{}
	for _, rec := range f.jobs.stages[id] {
		order = append(order, rec.HiringStageID)
	}
	require.Equal(t, []string{"st3", "st1", "st2"}, order)

	require.NoError(t, f.handler.StageSet("m1", id, []string{"st4", "st2"}))
	require.Len(t, f.jobs.stages[id], 2)

	var vErr models.ValidationError
	require.ErrorAs(t, f.handler.StageSet("m1", id, []string{"st9"}), &vErr)
	require.ErrorIs(t, f.handler.StageSet("m3", id, []string{"st1"}), models.ErrAccessDenied)
}

func TestDeadlineIsUTCDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := newFixture()
	f.handler.now = func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, tokyo)
	}

	data := jobData(models.JobStatusDraft)
	data.SubmissionDeadline = "2026-03-20"
	id, err := f.handler.Create("m1", data)
	require.NoError(t, err)
	stored := f.jobs.jobs[id].SubmissionDeadline
	require.NotNil(t, stored)
	require.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), stored.UTC())

	// the database hands the value back in another zone once the deadline is over
	reloaded := stored.In(time.FixedZone("EST", -5*60*60))
	f.jobs.jobs[id].SubmissionDeadline = &reloaded
	require.Equal(t, "2026-03-20", jobapimodels.JobConvert(*f.jobs.jobs[id]).SubmissionDeadline)
	f.handler.now = func() time.Time {
		return time.Date(2026, 4, 1, 8, 0, 0, 0, tokyo)
	}
	require.NoError(t, f.handler.Update("m1", id, data))

	data.SubmissionDeadline = "2026-03-31"
	require.Error(t, f.handler.Update("m1", id, data))
}
